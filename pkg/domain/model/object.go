// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
)

// ObjectType はシーンオブジェクトの種別タグを表す。
type ObjectType string

const (
	TypeRoot                   ObjectType = "ROOT"
	TypeArmature               ObjectType = "ARMATURE"
	TypeRigidGroup             ObjectType = "RIGID_GRP_OBJ"
	TypeJointGroup             ObjectType = "JOINT_GRP_OBJ"
	TypeTemporaryGroup         ObjectType = "TEMPORARY_GRP_OBJ"
	TypeRigidBody              ObjectType = "RIGID_BODY"
	TypeJoint                  ObjectType = "JOINT"
	TypeTrackTarget            ObjectType = "TRACK_TARGET"
	TypeNonCollisionConstraint ObjectType = "NON_COLLISION_CONSTRAINT"
)

// ParentKind はオブジェクトの親子付け方式を表す。
type ParentKind int

const (
	// ParentObject はオブジェクト親子付け。
	ParentObject ParentKind = iota
	// ParentBone はボーン親子付け。
	ParentBone
)

// ParentRelationConstraintName は剛体とボーンを結ぶ親子関係コンストレイント名。
const ParentRelationConstraintName = "mu_rigid_parent"

// IsBuiltPropKey はリグルートへ組立済み状態を記録するプロパティキー。
const IsBuiltPropKey = "mu_rig_is_built"

// ChildOfConstraint はオブジェクトをボーンへ追従させるコンストレイントを表す。
type ChildOfConstraint struct {
	Name      string
	Target    *Object
	Subtarget string
	Mute      bool
	Inverse   mmath.Mat4
}

// Object はシーングラフ上のノードを表す。
// ID はシーン登録時に採番される安定識別子で、参照の代わりにペアキー等へ用いる。
type Object struct {
	ID   int
	Name string
	Type ObjectType

	Translation mmath.Vec3
	Rotation    mmath.Quaternion
	Scale       mmath.Vec3

	Parent         *Object
	ParentKind     ParentKind
	ParentBoneName string

	BoundBox [8]mmath.Vec3

	Hide       bool
	HideSelect bool

	// Props はバックアップキー等のカスタムプロパティを保持する。
	Props map[string]any

	Constraints []*ChildOfConstraint

	RigidBody *RigidBodySettings
	Joint     *JointSettings
	Armature  *Armature
}

// NewObject は種別と名前からオブジェクトを生成する。
func NewObject(name string, objType ObjectType) *Object {
	return &Object{
		Name:     name,
		Type:     objType,
		Rotation: mmath.QuaternionIdent(),
		Scale:    mmath.OneVec3(),
		Props:    map[string]any{},
	}
}

// NewBoundBox はmin/max角からBlender準拠の8角配列を生成する。
// 角0が(min,min,min)、角6が(max,max,max)になる。
func NewBoundBox(min, max mmath.Vec3) [8]mmath.Vec3 {
	return [8]mmath.Vec3{
		mmath.NewVec3(min.X, min.Y, min.Z),
		mmath.NewVec3(min.X, min.Y, max.Z),
		mmath.NewVec3(min.X, max.Y, max.Z),
		mmath.NewVec3(min.X, max.Y, min.Z),
		mmath.NewVec3(max.X, min.Y, min.Z),
		mmath.NewVec3(max.X, min.Y, max.Z),
		mmath.NewVec3(max.X, max.Y, max.Z),
		mmath.NewVec3(max.X, max.Y, min.Z),
	}
}

// MatrixLocal はローカル変換行列を返す。
func (o *Object) MatrixLocal() mmath.Mat4 {
	return mmath.NewMat4FromTRS(o.Translation, o.Rotation, o.Scale)
}

// parentFactor は親側の変換行列(ボーン親子付け時はポーズ行列込み)を返す。
func (o *Object) parentFactor() mmath.Mat4 {
	if o.Parent == nil {
		return mmath.NewMat4Ident()
	}
	world := o.Parent.MatrixWorld()
	if o.ParentKind == ParentBone && o.Parent.Armature != nil {
		if bone, ok := o.Parent.Armature.Bone(o.ParentBoneName); ok {
			return world.Muled(bone.PoseMatrix)
		}
	}
	return world
}

// MatrixWorld はワールド変換行列を返す。
func (o *Object) MatrixWorld() mmath.Mat4 {
	return o.parentFactor().Muled(o.MatrixLocal())
}

// SetMatrixWorld は指定ワールド行列になるようローカル変換を再計算する。
func (o *Object) SetMatrixWorld(world mmath.Mat4) {
	local := o.parentFactor().Inverted().Muled(world)
	t, r, s := local.Decompose()
	o.Translation = t
	o.Rotation = r
	o.Scale = s
}

// SetParentObject はワールド変換を保ったままオブジェクト親子付けへ変更する。
func (o *Object) SetParentObject(parent *Object) {
	world := o.MatrixWorld()
	o.Parent = parent
	o.ParentKind = ParentObject
	o.ParentBoneName = ""
	o.SetMatrixWorld(world)
}

// SetParentBone はワールド変換を保ったままボーン親子付けへ変更する。
func (o *Object) SetParentBone(armature *Object, boneName string) {
	world := o.MatrixWorld()
	o.Parent = armature
	o.ParentKind = ParentBone
	o.ParentBoneName = boneName
	o.SetMatrixWorld(world)
}

// Constraint は名前でオブジェクトコンストレイントを引く。
func (o *Object) Constraint(name string) (*ChildOfConstraint, bool) {
	for _, c := range o.Constraints {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AddConstraint はコンストレイントを追加する。
func (o *Object) AddConstraint(c *ChildOfConstraint) {
	o.Constraints = append(o.Constraints, c)
}

// RemoveConstraint は名前一致のコンストレイントを取り除く。
func (o *Object) RemoveConstraint(name string) {
	kept := o.Constraints[:0]
	for _, c := range o.Constraints {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	o.Constraints = kept
}

// IsRigidBodyObject は剛体オブジェクトか判定する。
func IsRigidBodyObject(obj *Object) bool {
	return obj != nil && obj.Type == TypeRigidBody
}

// IsJointObject はジョイントオブジェクトか判定する。
func IsJointObject(obj *Object) bool {
	return obj != nil && obj.Type == TypeJoint
}

// IsTemporaryObject はビルド時に生成される一時オブジェクトか判定する。
func IsTemporaryObject(obj *Object) bool {
	if obj == nil {
		return false
	}
	return obj.Type == TypeTrackTarget || obj.Type == TypeNonCollisionConstraint
}
