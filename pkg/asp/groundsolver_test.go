package asp

import (
	"sort"
	"testing"
)

func modelStrings(atoms []Symbol) []string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.String()
	}
	sort.Strings(out)
	return out
}

func TestGroundControlEnumeratesWorkedExample(t *testing.T) {
	ctl, err := NewGroundControl("a;b. c;d :- b. e.", nil, stubParser{})
	if err != nil {
		t.Fatalf("NewGroundControl error: %v", err)
	}

	handle, err := ctl.Solve(SolveYield, nil)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	defer handle.Close()

	var got []string
	for {
		atoms, ok, err := handle.Model()
		if err != nil {
			t.Fatalf("Model error: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, fmtModel(modelStrings(atoms)))
		if err := handle.Resume(); err != nil {
			t.Fatalf("Resume error: %v", err)
		}
	}

	want := map[string]bool{"a,e": true, "b,c,e": true, "b,d,e": true}
	if len(got) != 3 {
		t.Fatalf("expected 3 stable models, got %d: %v", len(got), got)
	}
	for _, m := range got {
		if !want[m] {
			t.Errorf("unexpected model %q", m)
		}
		delete(want, m)
	}
	if len(want) != 0 {
		t.Errorf("missing expected models: %v", want)
	}
}

func fmtModel(atoms []string) string {
	out := ""
	for i, a := range atoms {
		if i > 0 {
			out += ","
		}
		out += a
	}
	return out
}

func TestGroundControlConsequences(t *testing.T) {
	ctl, err := NewGroundControl("a;b. c;d :- b. e.", nil, stubParser{})
	if err != nil {
		t.Fatalf("NewGroundControl error: %v", err)
	}

	brave, err := ctl.consequence(EnumBrave, nil)
	if err != nil {
		t.Fatalf("brave consequence error: %v", err)
	}
	braveSet := map[string]bool{}
	for _, s := range brave {
		braveSet[s.String()] = true
	}
	for _, want := range []string{"a", "b", "c", "d", "e"} {
		if !braveSet[want] {
			t.Errorf("expected %q in brave consequences, got %v", want, brave)
		}
	}

	cautious, err := ctl.consequence(EnumCautious, nil)
	if err != nil {
		t.Fatalf("cautious consequence error: %v", err)
	}
	if len(cautious) != 1 || cautious[0].String() != "e" {
		t.Errorf("expected cautious consequences {e}, got %v", cautious)
	}
}

func TestGroundControlAnswerSetCount(t *testing.T) {
	ctl, err := NewGroundControl("a;b. c;d :- b. e.", nil, stubParser{})
	if err != nil {
		t.Fatalf("NewGroundControl error: %v", err)
	}
	count, err := ctl.AnswerSetCount(nil, 0)
	if err != nil {
		t.Fatalf("AnswerSetCount error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 stable models, got %d", count)
	}
}
