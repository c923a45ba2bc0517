package combinator

import "testing"

func TestCompiledCategoryAssignsAttributes(t *testing.T) {
	c, err := Compile(Rule{
		Symbol: "N",
		Match:  `Token == "dog" || Token == "dogs"`,
		Build:  `{"NUM": Token == "dogs" ? "pl" : "sg"}`,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	cat := c.Category()

	specs, ok := cat.Lookup("dogs")
	if !ok || len(specs) != 1 {
		t.Fatalf("Lookup(dogs): ok=%v specs=%v", ok, specs)
	}

	_, ok = cat.Lookup("cats")
	if ok {
		t.Fatalf("Lookup(cats) should not match")
	}
}
