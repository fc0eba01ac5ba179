package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCascadeSplitsMonotonicAndBounded(t *testing.T) {
	for _, count := range []int{1, 2, 3, 4} {
		for _, far := range []float32{10, 100, 1000} {
			splits := computeCascadeSplits(0.1, far, count, 0.7)
			if len(splits) != count {
				t.Fatalf("far=%v count=%d: got %d splits", far, count, len(splits))
			}
			prev := float32(0)
			for i, s := range splits {
				if s <= 0 || s > 1 {
					t.Errorf("far=%v count=%d split[%d] = %v, want in (0, 1]", far, count, i, s)
				}
				if s <= prev {
					t.Errorf("far=%v count=%d split[%d] = %v not increasing (prev %v)", far, count, i, s, prev)
				}
				prev = s
			}
		}
	}
}

func TestCascadeSplitsLambdaZeroIsUniform(t *testing.T) {
	splits := computeCascadeSplits(0.1, 100, 4, 0)
	// uniform_i = (0.1 + 99.9·i/4) / 100
	want := []float32{0.25075, 0.5005, 0.75025, 1.0}
	for i := range want {
		if math32Abs(splits[i]-want[i]) > epsilon {
			t.Errorf("split[%d] = %v, want %v", i, splits[i], want[i])
		}
	}
}

// Zero (or negative) cascade counts must degrade to one full-range cascade,
// never divide by zero or index out of range.
func TestZeroCascadesFallsBack(t *testing.T) {
	for _, count := range []int{0, -3} {
		l := newDirectionalLight(mgl32.Vec3{0, -1, 0}, ColorWhite, 100, count)
		if l.NumCascades() != 1 {
			t.Errorf("count=%d: NumCascades = %d, want 1", count, l.NumCascades())
		}
		if len(l.cascades) != 1 {
			t.Errorf("count=%d: %d cascades generated, want 1", count, len(l.cascades))
		}
		vps := l.CascadeVPs(mgl32.Vec3{})
		if len(vps) != 1 {
			t.Errorf("count=%d: %d VPs, want 1", count, len(vps))
		}
	}
}

func TestCascadeCountClamped(t *testing.T) {
	l := newDirectionalLight(mgl32.Vec3{1, 0, 0}, ColorWhite, 100, 99)
	if l.NumCascades() != maxCascades {
		t.Errorf("NumCascades = %d, want %d", l.NumCascades(), maxCascades)
	}
}

// A missing split-factor index must default to the full range instead of
// panicking.
func TestGenCascadesMissingFactorDefaults(t *testing.T) {
	l := newDirectionalLight(mgl32.Vec3{0, -1, 0}, ColorWhite, 100, 2)
	l.cascadeFactors = l.cascadeFactors[:1]
	l.genCascades()
	if len(l.cascades) != 2 {
		t.Fatalf("%d cascades, want 2", len(l.cascades))
	}
	// The second cascade fell back to the full-range ortho volume.
	full := mgl32.Ortho(-50, 50, -50, 50, cascadeNearPlane, 100)
	assertMat4Near(t, l.cascades[1].projection, full, "fallback projection")
}

// The light view translates with the camera so shadow coverage stays
// centered: moving the camera by d moves the projected origin by -d in
// light space.
func TestCascadeVPsFollowCamera(t *testing.T) {
	l := newDirectionalLight(mgl32.Vec3{1, -1, 0}, ColorWhite, 100, 1)

	atOrigin := l.CascadeVPs(mgl32.Vec3{})[0]
	moved := l.CascadeVPs(mgl32.Vec3{30, 0, 0})[0]

	a := atOrigin.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	b := moved.Mul4x1(mgl32.Vec4{30, 0, 0, 1})
	for i := 0; i < 4; i++ {
		if math32Abs(a[i]-b[i]) > epsilon {
			t.Fatalf("camera-relative projection differs: %v vs %v", a, b)
		}
	}
}

func TestSetFarPlaneRegenerates(t *testing.T) {
	l := newDirectionalLight(mgl32.Vec3{0, -1, 0}, ColorWhite, 100, 4)
	before := append([]float32(nil), l.cascadeFactors...)

	l.SetFarPlane(500)

	if l.FarPlane() != 500 {
		t.Errorf("FarPlane = %v, want 500", l.FarPlane())
	}
	if len(l.cascadeFactors) != 4 || len(l.cascades) != 4 {
		t.Fatalf("factors/cascades not regenerated: %d/%d", len(l.cascadeFactors), len(l.cascades))
	}
	same := true
	for i := range before {
		if math32Abs(before[i]-l.cascadeFactors[i]) > epsilon {
			same = false
		}
	}
	if same {
		t.Error("split factors unchanged after far-plane change")
	}
}
