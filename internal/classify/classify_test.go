package classify

import (
	"testing"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Answer
	}{
		{"Colloquial Yes", "ايوه", domain.Yes()},
		{"Hamza Yes", "أيوه", domain.Yes()},
		{"Plain No", "لا", domain.No()},
		{"Cancel Is No", "إلغاء", domain.No()},
		{"Duration", "10 سنوات", domain.Duration("10 سنوات")},
		{"Duration Keeps Raw Text", "  خمس سنوات 5  ", domain.Duration("خمس سنوات 5")},
		{"Arabic-Indic Digits", "١٠ سنوات", domain.Duration("١٠ سنوات")},
		{"Branch Delivery", "توصيل للفرع", domain.Delivery(domain.DeliveryBranch)},
		{"Branch Without Delivery Word", "من الفرع", domain.Delivery(domain.DeliveryBranch)},
		// "استلام" contains the negative word "لا", which is checked first.
		{"Pickup Shadowed By No", "استلام", domain.No()},
		{"Mail Is Post", "بريد", domain.Delivery(domain.DeliveryPost)},
		{"Delivery Is Post", "توصيل", domain.Delivery(domain.DeliveryPost)},
		{"Free Query", "ودي اسأل عن شي", domain.FreeQuery("ودي اسأل عن شي")},
		{"Free Query Trimmed", "  مرور  ", domain.FreeQuery("مرور")},
		{"Latin Yes Button", "yes", domain.Yes()},
		{"Latin Yes Folded", "YES", domain.Yes()},
		{"Latin No Button", "no", domain.No()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestClassify_PriorityOverSpecificity(t *testing.T) {
	// A yes-word wins over a digit.
	assert.Equal(t, domain.Yes(), Classify("نعم، 5 سنوات"))

	// A no-word wins over a delivery keyword.
	assert.Equal(t, domain.No(), Classify("لا، بريد"))

	// A digit wins over a delivery keyword.
	got := Classify("فرع 3")
	assert.Equal(t, domain.AnswerDuration, got.Kind)
	assert.Equal(t, "فرع 3", got.Value)
}

func TestClassify_DecomposedHamza(t *testing.T) {
	// Alef followed by a combining hamza above composes to U+0623.
	decomposed := "\u0627\u0654\u064a\u0648\u0647"
	assert.Equal(t, domain.Yes(), Classify(decomposed))
}

func TestNormalizeAlef(t *testing.T) {
	assert.Equal(t, "اسال", NormalizeAlef("أسأل"))
	assert.Equal(t, "إلغاء", NormalizeAlef("إلغاء"), "only the hamza-above variant is rewritten")
}
