// 指示: miu200521358
package model

import (
	"errors"
	"fmt"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
)

// Shape は剛体の衝突形状種別を表す。
type Shape string

const (
	ShapeSphere  Shape = "SPHERE"
	ShapeBox     Shape = "BOX"
	ShapeCapsule Shape = "CAPSULE"
)

// Mode は剛体の物理演算種別を表す。
type Mode int

const (
	// ModeStatic はボーン追従(キネマティック)剛体。
	ModeStatic Mode = iota
	// ModeDynamic は物理演算剛体。
	ModeDynamic
	// ModeDynamicBone は物理+ボーン位置合わせ剛体。
	ModeDynamicBone
)

// CollisionGroupCount は衝突グループ数。
const CollisionGroupCount = 16

// ErrInvalidShapeType は未知の衝突形状が指定された場合の構成エラー。
var ErrInvalidShapeType = errors.New("不正な剛体形状タイプです")

// RigidBodySettings は剛体の設定と物理バインディング状態を保持する。
type RigidBodySettings struct {
	Shape               Shape
	Mode                Mode
	CollisionGroup      int
	CollisionGroupMask  [CollisionGroupCount]bool
	Mass                float64
	Friction            float64
	Restitution         float64
	LinearDamping       float64
	AngularDamping      float64
	Bone                string

	// Bound は物理エンジン側バインディングの有無。偽の場合、組立処理は何もしない。
	Bound bool
	// Kinematic と CollisionShape は組立時に導出される。
	Kinematic      bool
	CollisionShape Shape
}

// GetRigidBodySize はバウンディングボックスの角0と角6から形状サイズを求める。
// 戻り値はSPHERE:(半径,0,0)、BOX:(x半径,y半径,z半径)、CAPSULE:(半径,高さ,0)。
func GetRigidBodySize(obj *Object) (mmath.Vec3, error) {
	if !IsRigidBodyObject(obj) || obj.RigidBody == nil {
		return mmath.ZeroVec3(), fmt.Errorf("剛体オブジェクトではありません: %s", obj.Name)
	}
	c0 := obj.BoundBox[0]
	c6 := obj.BoundBox[6]

	switch obj.RigidBody.Shape {
	case ShapeSphere:
		radius := (c6.Z - c0.Z) / 2
		return mmath.NewVec3(radius, 0, 0), nil
	case ShapeBox:
		return mmath.NewVec3((c6.X-c0.X)/2, (c6.Y-c0.Y)/2, (c6.Z-c0.Z)/2), nil
	case ShapeCapsule:
		diameter := c6.X - c0.X
		height := (c6.Z - c0.Z) - diameter
		if height < 0 {
			height = -height
		}
		return mmath.NewVec3(diameter/2, height, 0), nil
	default:
		return mmath.ZeroVec3(), fmt.Errorf("%w: %s", ErrInvalidShapeType, obj.RigidBody.Shape)
	}
}

// RigidBodyRange はバウンディングボックス対角長を返す。
// 形状に依らず対角長を包含球の代用として用いる。
func RigidBodyRange(obj *Object) float64 {
	return obj.BoundBox[0].Subed(obj.BoundBox[6]).Length()
}

// EnsureParentRelation は親子関係コンストレイントを取得し、無ければ
// 剛体設定に保存されたボーン名から再生成する。
func (o *Object) EnsureParentRelation(armature *Object) (*ChildOfConstraint, bool) {
	if relation, ok := o.Constraint(ParentRelationConstraintName); ok {
		return relation, false
	}
	relation := &ChildOfConstraint{
		Name:    ParentRelationConstraintName,
		Inverse: mmath.NewMat4Ident(),
	}
	if o.RigidBody != nil && o.RigidBody.Bone != "" && armature != nil {
		relation.Target = armature
		relation.Subtarget = o.RigidBody.Bone
	}
	o.AddConstraint(relation)
	return relation, true
}
