/*
Package dsl provides a Go DSL for declaring AbsherAi flow catalogs.

It lets flows be defined with a fluent builder instead of YAML or markdown
documents, which keeps output rules as real Go functions and makes test
catalogs cheap to write.

Example usage:

	b := dsl.New()
	b.Section("muroor", "خدمات المرور")

	b.Add("تجديد رخصة").
		In("muroor").
		Named("تجديد رخصة القيادة").
		Say("أشيّك صلاحية رخصتك...").
		Ask("اختر مدة التجديد: سنتين / خمس سنوات / عشر سنوات").
		Output(func(ctx domain.FlowContext) string {
			return "تم تجديد رخصتك (" + ctx.Period + ") بنجاح."
		})

	// The builder is a ports.CatalogLoader.
	cat, err := catalog.FromLoader(b)
*/
package dsl
