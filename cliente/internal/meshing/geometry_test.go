package meshing

import "testing"

func quadGeometry(c [4]uint8, flags int32) GeometryData {
	b := &MeshBuffer{}
	b.AddFaceUV([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{1, 1, 0}, [3]float32{0, 1, 0},
		[2]float32{0, 1}, [2]float32{1, 1}, [2]float32{1, 0}, [2]float32{0, 0},
		[3]float32{0, 0, 1}, c, flags)
	return b.Geometry
}

func TestApplyClimateTint(t *testing.T) {
	t.Run("255 não altera", func(t *testing.T) {
		g := quadGeometry([4]uint8{10, 128, 200, 255}, 0)
		orig := g.Clone()
		ApplyClimateTint(&g, [4]uint8{255, 255, 255, 255})
		for i := range g.Colors {
			if g.Colors[i] != orig.Colors[i] {
				t.Fatalf("canal %d mudou: %d -> %d", i, orig.Colors[i], g.Colors[i])
			}
		}
	})

	t.Run("escala por canal", func(t *testing.T) {
		g := quadGeometry([4]uint8{200, 200, 200, 200}, 0)
		ApplyClimateTint(&g, [4]uint8{255, 128, 0, 51})
		want := [4]uint8{200, 100, 0, 40}
		for i := range g.Colors {
			if g.Colors[i] != want[i%4] {
				t.Fatalf("vértice %d canal %d = %d, esperado %d", i/4, i%4, g.Colors[i], want[i%4])
			}
		}
	})

	t.Run("nunca aumenta", func(t *testing.T) {
		g := quadGeometry([4]uint8{255, 1, 77, 254}, 0)
		orig := g.Clone()
		ApplyClimateTint(&g, [4]uint8{254, 200, 100, 3})
		for i := range g.Colors {
			if g.Colors[i] > orig.Colors[i] {
				t.Fatalf("canal %d aumentou: %d -> %d", i, orig.Colors[i], g.Colors[i])
			}
		}
	})
}

func TestClearRenderFlag(t *testing.T) {
	const other int32 = 1 << 3
	g := quadGeometry(white, FlagLiquidWave|other)
	if !g.HasFlag(FlagLiquidWave) {
		t.Fatal("quad deveria começar com a flag")
	}
	ClearRenderFlag(&g, FlagLiquidWave)
	if g.HasFlag(FlagLiquidWave) {
		t.Fatal("flag ainda presente após ClearRenderFlag")
	}
	for i, f := range g.Flags {
		if f != other {
			t.Fatalf("vértice %d perdeu outras flags: %b", i, f)
		}
	}
}

func TestPooledBufferIsClean(t *testing.T) {
	b := GetMeshBuffer()
	b.AddFaceUV([3]float32{}, [3]float32{}, [3]float32{}, [3]float32{},
		[2]float32{}, [2]float32{}, [2]float32{}, [2]float32{}, [3]float32{}, white, 1)
	b.Geometry.Texture = "x"
	PutMeshBuffer(b)

	b = GetMeshBuffer()
	defer PutMeshBuffer(b)
	if !b.Geometry.Empty() || len(b.Geometry.Flags) != 0 || b.Geometry.Texture != "" {
		t.Fatal("buffer do pool deveria vir vazio")
	}
}
