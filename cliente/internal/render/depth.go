package render

import "WinchWorks/shared/util"

// DepthInterpolator suaviza a profundidade desenhada do balde em direção ao alvo.
type DepthInterpolator struct {
	Rate float32 // Fator de lerp por segundo

	last   float32
	target float32
}

// Snap salta direto para v, sem interpolação.
func (d *DepthInterpolator) Snap(v float32) {
	d.last = v
	d.target = v
}

// SetTarget muda o alvo sem mexer no valor atual.
func (d *DepthInterpolator) SetTarget(v float32) {
	d.target = v
}

// Advance aproxima o valor do alvo. O fator é limitado a [0, 1], então nunca passa do alvo.
func (d *DepthInterpolator) Advance(dt float32) {
	if dt <= 0 {
		return
	}
	f := util.Clamp(dt*d.Rate, 0, 1)
	if f >= 1 {
		d.last = d.target
		return
	}
	d.last = util.Lerp(d.last, d.target, f)
}

// Value retorna a profundidade a desenhar.
func (d *DepthInterpolator) Value() float32 { return d.last }

// Target retorna o alvo atual.
func (d *DepthInterpolator) Target() float32 { return d.target }
