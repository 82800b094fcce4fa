// Package glsl embeds the viewer's shader sources.
package glsl

import _ "embed"

//go:embed basic.vert
var BasicVertex string

//go:embed basic.frag
var BasicFragment string

//go:embed shadow.vert
var ShadowVertex string

//go:embed shadow.frag
var ShadowFragment string
