// 指示: miu200521358
package mmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 は4x4同次変換行列を表す。
type Mat4 struct {
	mgl64.Mat4
}

// NewMat4Ident は単位行列を返す。
func NewMat4Ident() Mat4 {
	return Mat4{Mat4: mgl64.Ident4()}
}

// NewMat4FromMgl はmgl64表現から生成する。
func NewMat4FromMgl(m mgl64.Mat4) Mat4 {
	return Mat4{Mat4: m}
}

// NewMat4FromTranslation は平行移動行列を生成する。
func NewMat4FromTranslation(t Vec3) Mat4 {
	return Mat4{Mat4: mgl64.Translate3D(t.X, t.Y, t.Z)}
}

// NewMat4FromTRS は平行移動・回転・拡縮から合成行列を生成する。
func NewMat4FromTRS(t Vec3, r Quaternion, s Vec3) Mat4 {
	trans := mgl64.Translate3D(t.X, t.Y, t.Z)
	rot := r.Normalized().Mgl().Mat4()
	scale := mgl64.Scale3D(s.X, s.Y, s.Z)
	return Mat4{Mat4: trans.Mul4(rot).Mul4(scale)}
}

// Muled は行列積 m*other を返す。
func (m Mat4) Muled(other Mat4) Mat4 {
	return Mat4{Mat4: m.Mat4.Mul4(other.Mat4)}
}

// Inverted は逆行列を返す。
func (m Mat4) Inverted() Mat4 {
	return Mat4{Mat4: m.Mat4.Inv()}
}

// Translation は平行移動成分を返す。
func (m Mat4) Translation() Vec3 {
	return NewVec3(m.Mat4[12], m.Mat4[13], m.Mat4[14])
}

// MuledVec3 は点vへ同次変換を適用する。
func (m Mat4) MuledVec3(v Vec3) Vec3 {
	r := mgl64.TransformCoordinate(v.Mgl(), m.Mat4)
	return vec3FromMgl(r)
}

// Decompose は行列を平行移動・回転・拡縮へ分解する。
// 拡縮は各基底列のノルムとして取り出し、回転は正規化後の基底から求める。
func (m Mat4) Decompose() (Vec3, Quaternion, Vec3) {
	t := m.Translation()

	c0 := NewVec3(m.Mat4[0], m.Mat4[1], m.Mat4[2])
	c1 := NewVec3(m.Mat4[4], m.Mat4[5], m.Mat4[6])
	c2 := NewVec3(m.Mat4[8], m.Mat4[9], m.Mat4[10])
	s := NewVec3(c0.Length(), c1.Length(), c2.Length())

	rot := mgl64.Ident4()
	if s.X != 0 && s.Y != 0 && s.Z != 0 {
		rot[0], rot[1], rot[2] = c0.X/s.X, c0.Y/s.X, c0.Z/s.X
		rot[4], rot[5], rot[6] = c1.X/s.Y, c1.Y/s.Y, c1.Z/s.Y
		rot[8], rot[9], rot[10] = c2.X/s.Z, c2.Y/s.Z, c2.Z/s.Z
	}
	r := quaternionFromMgl(mgl64.Mat4ToQuat(rot)).Normalized()

	return t, r, s
}

// Quaternion は回転成分のみを取り出す。
func (m Mat4) Quaternion() Quaternion {
	_, r, _ := m.Decompose()
	return r
}

// NearEquals は全成分の許容誤差内一致を返す。
func (m Mat4) NearEquals(other Mat4, epsilon float64) bool {
	for i := 0; i < 16; i++ {
		if abs(m.Mat4[i]-other.Mat4[i]) > epsilon {
			return false
		}
	}
	return true
}
