package camera

import gomath "math"

func sin32(x float32) float32 { return float32(gomath.Sin(float64(x))) }

func cos32(x float32) float32 { return float32(gomath.Cos(float64(x))) }

func asin32(x float32) float32 { return float32(gomath.Asin(float64(x))) }

func atan2(y, x float32) float32 { return float32(gomath.Atan2(float64(y), float64(x))) }
