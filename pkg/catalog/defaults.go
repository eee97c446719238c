package catalog

import (
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/dsl"
)

// Section ids of the default catalog.
const (
	SectionAhwal   = "ahwal"
	SectionMuroor  = "muroor"
	SectionJawaz   = "jawaz"
	SectionIqama   = "iqama"
	SectionTafweed = "tafweed"
)

// DefaultSections are the main menu entries.
var DefaultSections = []domain.Section{
	{ID: SectionAhwal, Label: "خدمات الأحوال الوطنية"},
	{ID: SectionMuroor, Label: "خدمات المرور"},
	{ID: SectionJawaz, Label: "خدمات الجوازات"},
	{ID: SectionIqama, Label: "خدمات الإقامة"},
	{ID: SectionTafweed, Label: "التفويض والاستعلامات"},
}

const chosenPeriod = "المدة المختارة"

func periodOrDefault(ctx domain.FlowContext) string {
	if ctx.Period == "" {
		return chosenPeriod
	}
	return ctx.Period
}

// DefaultBuilder declares the built-in simulation flows.
func DefaultBuilder() *dsl.Builder {
	b := dsl.New()
	for _, s := range DefaultSections {
		b.Section(s.ID, s.Label)
	}

	b.Add("تجديد الهوية").
		In(SectionAhwal).
		Named("تجديد بطاقة الهوية الوطنية").
		Say("أشيّك على صلاحية الهوية...").
		Say("أشيّك على الصورة الشخصية...").
		Say("أشيّك على العنوان الوطني...").
		Ask("هل تريد تجديد الهوية الآن؟").
		Ask("طريقة الاستلام: التوصيل أم استلام من الفرع؟").
		Say("جاري معالجة طلب التجديد...").
		Output(func(ctx domain.FlowContext) string {
			if ctx.Delivery == domain.DeliveryBranch {
				return "تم تجديد الهوية بنجاح — تم حجز موعد للفرع: الخميس 10 صباحًا."
			}
			return "تم تجديد الهوية بنجاح — سيتم التوصيل عبر البريد خلال 5 أيام."
		})

	b.Add("بدل مفقود").
		In(SectionAhwal).
		Named("إصدار بدل مفقود/تالف للهوية").
		Ask("هل تريد تقديم بلاغ فقدان/تلف الآن؟").
		Say("تم تقديم البلاغ.").
		Ask("هل تريد طلب بدل فاقد الآن؟").
		Ask("اختر طريقة الاستلام: توصيل أو فرع").
		Say("يتم تجهيز البدل الآن.").
		OutputText("تم إصدار طلب بدل الهوية وسيصلك إشعار بالمتابعة.")

	b.Add("اصدار اول مرة").
		In(SectionAhwal).
		Named("إصدار هوية وطنية لأول مرة").
		Ask("هل صاحب الطلب بلغ 15 سنة أو أكثر؟").
		Ask("هل لديك سجل الأسرة لولي الأمر؟").
		Say("حدد موعد لزيارة الفرع لإتمام الإصدار.").
		OutputText("تم حجز موعد لإصدار الهوية لأول مرة. راجع الفرع بالمستندات المطلوبة.")

	b.Add("تجديد رخصة").
		In(SectionMuroor).
		Named("تجديد رخصة القيادة").
		Say("أشيّك صلاحية رخصتك...").
		Say("أشيّك الفحص الطبي والتأمين...").
		Ask("اختر مدة التجديد: سنتين / خمس سنوات / عشر سنوات").
		Say("جاري تنفيذ التجديد...").
		Output(func(ctx domain.FlowContext) string {
			return "تم تجديد رخصتك (" + periodOrDefault(ctx) + ") بنجاح."
		})

	b.Add("نقل ملكية").
		In(SectionMuroor).
		Named("نقل ملكية مركبة").
		Ask("هل الطرف الثاني وافق عبر حسابه؟").
		Say("جاري التحقق من الفحص والتأمين...").
		Ask("هل تريد إتمام نقل الملكية الآن؟").
		OutputText("تم إرسال طلب نقل الملكية للطرف الثاني. بعد الموافقة يتم استكمال الإجراءات.")

	b.Add("الاستعلام عن المخالفات").
		In(SectionMuroor).
		Named("الاستعلام عن المخالفات").
		Say("جاري جلب المخالفات المسجلة...").
		OutputText("لديك مخالفة واحدة بقيمة 300 ريال (محاكاة).")

	b.Add("تجديد جواز").
		In(SectionJawaz).
		Named("تجديد جواز السفر السعودي").
		Say("تحقق من صلاحية الجواز...").
		Ask("اختر المدة: 5 سنوات / 10 سنوات").
		Say("جاري تنفيذ طلب التجديد...").
		Output(func(ctx domain.FlowContext) string {
			return "تم تجديد الجواز (" + periodOrDefault(ctx) + ") وسيتم التوصيل خلال أيام."
		})

	b.Add("خروج وعودة").
		In(SectionJawaz).
		Named("إصدار تأشيرة خروج وعودة").
		Ask("تأشيرة مفردة أم متعددة؟").
		Ask("ما مدة التأشيرة بالأيام؟").
		Say("جاري إصدار التأشيرة...").
		OutputText("تم إصدار تأشيرة خروج وعودة (محاكاة).")

	b.Add("تجديد اقامة").
		In(SectionIqama).
		Named("تجديد الإقامة").
		Say("جاري التحقق من صلاحية التأمين والرسوم...").
		Ask("كم مدة التجديد؟").
		Say("جاري تنفيذ التجديد...").
		OutputText("تم تجديد الإقامة (محاكاة).")

	b.Add("نقل كفالة").
		In(SectionIqama).
		Named("نقل كفالة عامل").
		Ask("هل صاحب العمل الجديد وافق؟").
		Say("إرسال الطلب للطرف الآخر للموافقة...").
		Ask("هل تريد متابعة الطلب الآن؟").
		OutputText("تم إرسال طلب نقل الكفالة (محاكاة).")

	b.Add("تفويض خدمة").
		In(SectionTafweed).
		Named("تفويض الخدمات").
		Ask("اختر نوع التفويض: مرور / جوازات / احوال").
		Ask("أدخل رقم هوية المفوض له").
		Say("إرسال طلب التفويض للطرف الآخر...").
		OutputText("تم إرسال طلب التفويض، في حال قبول الطرف يصل الإشعار.")

	b.Add("استعلام عام").
		In(SectionTafweed).
		Named("استعلامات عامة").
		Ask("ما نوع الاستعلام الذي ترغب به؟").
		Output(func(ctx domain.FlowContext) string {
			return "تمت معالجة الاستعلام: " + ctx.Query
		})

	return b
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := FromLoader(DefaultBuilder())
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}
