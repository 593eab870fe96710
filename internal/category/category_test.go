// internal/category/category_test.go
package category

import "testing"

func TestClassifyTag(t *testing.T) {
	cases := []struct {
		tag         string
		description string
		want        Category
	}{
		{"Currents", "", Current},
		{"Voltages", "", Voltage},
		{"Power Factors", "", PowerFactor},
		{"Power", "", Power},
		{"Setup", "", Setup},
		{"Energy", "", Energy},
		{"Power/Reactive", "", Category("power_reactive")},
		{"  currents  ", "", Current},
	}
	for _, c := range cases {
		if got := Classify(c.tag, c.description); got != c.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", c.tag, c.description, got, c.want)
		}
	}
}

func TestClassifyDescriptionFallback(t *testing.T) {
	got := Classify("", "Corrente di linea L1 A")
	if got != Category("corrente_di_linea_l1_a") {
		t.Fatalf("Classify() = %q", got)
	}
	if got.Known() {
		t.Fatal("fallback token must not be a known category")
	}
}

func TestKnown(t *testing.T) {
	for _, c := range []Category{Current, Voltage, Power, PowerFactor, Energy, Setup} {
		if !c.Known() {
			t.Errorf("%q should be known", c)
		}
	}
	if Category("transducer_ratio").Known() {
		t.Error("open tokens must not be known")
	}
}
