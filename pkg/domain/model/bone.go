// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
)

// RigidTrackConstraintName はボーンを剛体へ追従させるコンストレイント名。
const RigidTrackConstraintName = "mu_rigid_track"

// BoneConstraintKind はボーンコンストレイントの種別を表す。
type BoneConstraintKind int

const (
	// BoneConstraintIK はIKコンストレイント。解決は外部ホストに委ねる。
	BoneConstraintIK BoneConstraintKind = iota
	// BoneConstraintCopyTransforms は位置と回転の追従。
	BoneConstraintCopyTransforms
	// BoneConstraintCopyRotation は回転のみの追従。
	BoneConstraintCopyRotation
)

// BoneConstraint はポーズボーン上のコンストレイントを表す。
type BoneConstraint struct {
	Name      string
	Kind      BoneConstraintKind
	Mute      bool
	Influence float64
	Target    *Object
}

// Bone はスケルトンのポーズボーンを表す。
// RestMatrix/PoseMatrix はいずれもアーマチュア空間の4x4行列。
type Bone struct {
	Name        string
	RestMatrix  mmath.Mat4
	PoseMatrix  mmath.Mat4
	Constraints []*BoneConstraint
}

// NewBone は静止姿勢行列からボーンを生成する。ポーズは静止姿勢で初期化される。
func NewBone(name string, rest mmath.Mat4) *Bone {
	return &Bone{Name: name, RestMatrix: rest, PoseMatrix: rest}
}

// Constraint は名前でボーンコンストレイントを引く。
func (b *Bone) Constraint(name string) (*BoneConstraint, bool) {
	for _, c := range b.Constraints {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AddConstraint はコンストレイントを追加する。
func (b *Bone) AddConstraint(c *BoneConstraint) {
	b.Constraints = append(b.Constraints, c)
}

// RemoveConstraint は名前一致のコンストレイントを取り除く。
func (b *Bone) RemoveConstraint(name string) {
	kept := b.Constraints[:0]
	for _, c := range b.Constraints {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	b.Constraints = kept
}

// Armature はポーズボーンの集合を表す。
type Armature struct {
	bones  []*Bone
	byName map[string]*Bone
}

// NewArmature は空のアーマチュアを生成する。
func NewArmature() *Armature {
	return &Armature{byName: map[string]*Bone{}}
}

// AppendBone はボーンを追加する。同名ボーンは後勝ちで引けなくなるため登録しない。
func (a *Armature) AppendBone(bone *Bone) {
	if _, ok := a.byName[bone.Name]; ok {
		return
	}
	a.bones = append(a.bones, bone)
	a.byName[bone.Name] = bone
}

// Bone は名前でボーンを引く。
func (a *Armature) Bone(name string) (*Bone, bool) {
	bone, ok := a.byName[name]
	return bone, ok
}

// Bones は登録順のボーン一覧を返す。
func (a *Armature) Bones() []*Bone {
	return a.bones
}

// Len はボーン数を返す。
func (a *Armature) Len() int {
	return len(a.bones)
}
