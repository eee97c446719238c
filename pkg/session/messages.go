package session

import "github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"

// Button labels.
const (
	LabelContinue = "استمرار"
	LabelYes      = "نعم"
	LabelNo       = "لا"
	LabelOther    = "أخرى"
)

// Bot messages.
const (
	TextWelcome        = "أهلاً، أنا AbsherAi — مساعدك الذكي لخدمات وزارة الداخلية. كيف أقدر أخدمك؟"
	SpeechWelcome      = "أهلاً، أنا أبشر أي آي، كيف أقدر أخدمك اليوم؟"
	TextUnavailable    = "عذراً هذه الخدمة غير متاحة حالياً (محاكاة)."
	SpeechUnavailable  = "عذراً هذه الخدمة غير متاحة حالياً"
	TextUnrecognized   = "ما فهمت خدمتك. هذه بعض الأقسام المتاحة:"
	SpeechUnrecognized = "ما فهمت خدمتك. هذه بعض الأقسام المتاحة"
	TextAnotherService = "هل تريد خدمة أخرى؟"
	TextUnderDev       = "قيد التطوير"
	TextNoQuestion     = "لا يوجد سؤال جاري."
	TextTypeAnswer     = "فضلاً اكتب جوابك:"
	TextListening      = "🎤 أبدأ التحدث..."
	TextListenFailed   = "تعذر الاستماع، تأكد من إذن الميكروفون."
	TextMicUnsupported = "الميكروفون غير مدعوم"
	prefixRecognized   = "عرفت خدمتك"
	prefixPicked       = "تم اختيار"
)

func botMessage(text string) domain.Message {
	return domain.Message{Speaker: domain.SpeakerBot, Text: text}
}

func userMessage(text string) domain.Message {
	return domain.Message{Speaker: domain.SpeakerUser, Text: text}
}

func recognizedMessage(name string) domain.Message {
	return domain.Message{
		Speaker: domain.SpeakerBot,
		Text:    prefixRecognized + ": " + name,
		Speech:  prefixRecognized + " " + name,
	}
}

func continueChoice(cmd domain.Command) []domain.Choice {
	return []domain.Choice{{Label: LabelContinue, Command: cmd}}
}

func questionChoices() []domain.Choice {
	return []domain.Choice{
		{Label: LabelYes, Command: domain.AnswerCommand(domain.Yes())},
		{Label: LabelNo, Command: domain.AnswerCommand(domain.No())},
		{Label: LabelOther, Command: domain.OtherCommand()},
	}
}
