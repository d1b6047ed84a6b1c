// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
)

// JointSettings はジョイント(剛体間コンストレイント)の設定を保持する。
// DisableCollisions は組立中に衝突フィルタエンジンが導出する値であり、
// 作者が直接編集する値ではない。
type JointSettings struct {
	Object1 *Object
	Object2 *Object

	LinearLowerLimit  mmath.Vec3
	LinearUpperLimit  mmath.Vec3
	AngularLowerLimit mmath.Vec3
	AngularUpperLimit mmath.Vec3
	LinearSpring      mmath.Vec3
	AngularSpring     mmath.Vec3

	DisableCollisions bool

	// Bound は物理エンジン側バインディングの有無。偽の場合、組立処理は何もしない。
	Bound bool
}
