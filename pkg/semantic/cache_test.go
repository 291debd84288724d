package semantic

import "testing"

func TestTransformationCacheMarkAndQuery(t *testing.T) {
	c := NewTransformationCache()
	query := NewRegister("r", regType(1))
	goal := NewConstant("c", regType(1), 4)

	if c.KnownFailed(query, goal, 3) {
		t.Fatalf("nothing recorded yet, should not be known-failed")
	}
	c.MarkFailed(query, goal, 3)
	if !c.KnownFailed(query, goal, 3) {
		t.Fatalf("expected exact-depth lookup to hit")
	}
	if !c.KnownFailed(query, goal, 2) {
		t.Fatalf("a failure at depth 3 also rules out depth 2 (more restrictive bound)")
	}
	if c.KnownFailed(query, goal, 4) {
		t.Fatalf("a failure recorded at depth 3 must not rule out a deeper re-exploration at depth 4")
	}
}

func TestTransformationCacheRaisesRecordedDepth(t *testing.T) {
	c := NewTransformationCache()
	query := NewRegister("r", regType(1))
	goal := NewConstant("c", regType(1), 4)
	c.MarkFailed(query, goal, 2)
	c.MarkFailed(query, goal, 5)
	if !c.KnownFailed(query, goal, 5) {
		t.Fatalf("expected the higher recorded depth to be retained")
	}
}

func TestTransformationCacheDistinguishesQuery(t *testing.T) {
	c := NewTransformationCache()
	goal := NewConstant("c", regType(1), 4)
	queryA := NewRegister("a", regType(1))
	queryB := NewRegister("b", regType(1))

	c.MarkFailed(queryA, goal, 3)
	if c.KnownFailed(queryB, goal, 3) {
		t.Fatalf("a failure recorded for one query must not apply to a different query over the same goal")
	}
}

func TestTransformationCacheVerifiesOnHashHit(t *testing.T) {
	c := NewTransformationCache()
	query := NewRegister("r", regType(1))
	goalA := NewConstant("a", regType(1), 1)
	goalB := NewConstant("b", regType(1), 2)

	c.MarkFailed(query, goalA, 3)
	if c.KnownFailed(query, goalB, 3) {
		t.Fatalf("a failure recorded for one goal must not apply to a structurally different goal, even on a hash collision")
	}
}
