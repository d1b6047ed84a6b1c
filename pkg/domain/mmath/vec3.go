// 指示: miu200521358
package mmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// NewVec3 は成分からベクトルを生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// ZeroVec3 は零ベクトルを返す。
func ZeroVec3() Vec3 {
	return Vec3{}
}

// OneVec3 は全成分1のベクトルを返す。
func OneVec3() Vec3 {
	return NewVec3(1, 1, 1)
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍を返す。
func (v Vec3) MuledScalar(s float64) Vec3 {
	return Vec3{Vec: r3.Scale(s, v.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Distance は2点間距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return v.Subed(other).Length()
}

// NearEquals は許容誤差内での一致判定を返す。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	d := v.Subed(other)
	return abs(d.X) <= epsilon && abs(d.Y) <= epsilon && abs(d.Z) <= epsilon
}

// Mgl はmgl64表現へ変換する。
func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// vec3FromMgl はmgl64表現から生成する。
func vec3FromMgl(v mgl64.Vec3) Vec3 {
	return NewVec3(v.X(), v.Y(), v.Z())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
