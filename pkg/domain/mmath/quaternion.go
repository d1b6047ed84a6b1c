// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// Quaternion は回転クォータニオンを表す。
type Quaternion struct {
	quat.Number
}

// NewQuaternion はw,x,y,z成分からクォータニオンを生成する。
func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{Number: quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}}
}

// QuaternionIdent は単位クォータニオンを返す。
func QuaternionIdent() Quaternion {
	return NewQuaternion(1, 0, 0, 0)
}

// NewQuaternionFromAxisAngle は軸と角度(ラジアン)から生成する。
func NewQuaternionFromAxisAngle(axis Vec3, angle float64) Quaternion {
	length := axis.Length()
	if length == 0 {
		return QuaternionIdent()
	}
	half := angle * 0.5
	s := math.Sin(half) / length
	return NewQuaternion(math.Cos(half), axis.X*s, axis.Y*s, axis.Z*s)
}

// Muled は合成回転 q*other を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion{Number: quat.Mul(q.Number, other.Number)}
}

// Normalized は正規化したクォータニオンを返す。
func (q Quaternion) Normalized() Quaternion {
	n := quat.Abs(q.Number)
	if n == 0 {
		return QuaternionIdent()
	}
	return NewQuaternion(q.Real/n, q.Imag/n, q.Jmag/n, q.Kmag/n)
}

// NearEquals は許容誤差内での一致判定を返す。
// q と -q は同一回転として扱う。
func (q Quaternion) NearEquals(other Quaternion, epsilon float64) bool {
	if quatNearEquals(q, other, epsilon) {
		return true
	}
	neg := NewQuaternion(-other.Real, -other.Imag, -other.Jmag, -other.Kmag)
	return quatNearEquals(q, neg, epsilon)
}

func quatNearEquals(a, b Quaternion, epsilon float64) bool {
	return abs(a.Real-b.Real) <= epsilon &&
		abs(a.Imag-b.Imag) <= epsilon &&
		abs(a.Jmag-b.Jmag) <= epsilon &&
		abs(a.Kmag-b.Kmag) <= epsilon
}

// Mgl はmgl64表現へ変換する。
func (q Quaternion) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

// quaternionFromMgl はmgl64表現から生成する。
func quaternionFromMgl(q mgl64.Quat) Quaternion {
	return NewQuaternion(q.W, q.V.X(), q.V.Y(), q.V.Z())
}
