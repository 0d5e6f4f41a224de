package sapling

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPaintOrderBackToFront(t *testing.T) {
	in := []DrawnEntity{
		{Kind: KindLeaf, Center: Vec2{0, 300}},
		{Kind: KindLeaf, Center: Vec2{0, 100}},
		{Kind: KindLeaf, Center: Vec2{0, 200}},
	}
	got := paintOrder(in)
	for i := 1; i < len(got); i++ {
		if got[i-1].Center.Y > got[i].Center.Y {
			t.Fatalf("entities not back-to-front: Y %v before %v",
				got[i-1].Center.Y, got[i].Center.Y)
		}
	}
}

func TestPaintOrderFruitAlwaysLast(t *testing.T) {
	in := []DrawnEntity{
		{Kind: KindFruit, Center: Vec2{0, 50}}, // highest, would paint first by Y
		{Kind: KindLeaf, Center: Vec2{0, 300}},
		{Kind: KindBlossom, Center: Vec2{0, 100}},
		{Kind: KindFruit, Center: Vec2{0, 400}},
	}
	got := paintOrder(in)
	if got[2].Kind != KindFruit || got[3].Kind != KindFruit {
		t.Fatalf("fruit not painted last: order %v %v %v %v",
			got[0].Kind, got[1].Kind, got[2].Kind, got[3].Kind)
	}
	// Fruit sorts by Y among itself.
	if got[2].Center.Y > got[3].Center.Y {
		t.Error("fruit not back-to-front among itself")
	}
}

func TestPaintOrderStable(t *testing.T) {
	// Co-located entities keep generation order, so repeated renders of one
	// snapshot are pixel-identical.
	in := []DrawnEntity{
		{Kind: KindLeaf, Center: Vec2{1, 100}, Size: 1},
		{Kind: KindLeaf, Center: Vec2{2, 100}, Size: 2},
		{Kind: KindLeaf, Center: Vec2{3, 100}, Size: 3},
	}
	got := paintOrder(in)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("equal-Y entities reordered:\n%s", diff)
	}
}

func TestPaintOrderDoesNotMutateSnapshot(t *testing.T) {
	in := []DrawnEntity{
		{Kind: KindLeaf, Center: Vec2{0, 300}},
		{Kind: KindLeaf, Center: Vec2{0, 100}},
	}
	want := []DrawnEntity{in[0], in[1]}
	paintOrder(in)
	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("paintOrder mutated its input:\n%s", diff)
	}
}

func TestRenderSnapshotPaintsBranches(t *testing.T) {
	c := NewCanvas(64, 64)
	snap := &Snapshot{
		Branches: []DrawnBranch{{
			Start: Vec2{32, 60}, Control: Vec2{32, 32}, End: Vec2{32, 10},
			Width: 6, Stroke: testRed, Highlight: testGreen,
		}},
	}
	RenderSnapshot(c, snap, nil)

	if a := alphaAt(c, 32, 32); a == 0 {
		t.Error("branch stroke not painted")
	}
	// The highlight pass paints over the stroke center.
	if px := c.Image().NRGBAAt(32, 32); px.G == 0 {
		t.Errorf("highlight pass missing at stroke center: %+v", px)
	}
	if a := alphaAt(c, 5, 5); a != 0 {
		t.Error("area far from the branch painted")
	}
}

func TestRenderSnapshotEntityAlpha(t *testing.T) {
	c := NewCanvas(64, 64)
	snap := &Snapshot{
		Entities: []DrawnEntity{{
			Kind: KindFruit, Center: Vec2{32, 32}, Size: 10, Alpha: 0.5,
			Base: testRed, Highlight: testGreen, Sprite: -1,
		}},
	}
	RenderSnapshot(c, snap, nil)

	a := alphaAt(c, 32, 36)
	if a == 0 || a == 255 {
		t.Errorf("half-grown fruit alpha %d, want translucent", a)
	}
}

func TestRenderSnapshotSpriteIndexOutOfRange(t *testing.T) {
	// A sprite entity with no decoded sprite must be skipped, not panic.
	c := NewCanvas(32, 32)
	snap := &Snapshot{
		Entities: []DrawnEntity{{
			Kind: KindSprite, Center: Vec2{16, 16}, Size: 8, Alpha: 1, Sprite: 3,
		}},
	}
	RenderSnapshot(c, snap, nil)
	if a := alphaAt(c, 16, 16); a != 0 {
		t.Error("missing sprite painted something")
	}
}
