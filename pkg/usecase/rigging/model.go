// 指示: miu200521358

// Package rigging はMMDモデルの物理リグ組立/解除エンジンを提供する。
// アルゴリズムの流れは 前処理(退避とミュート) → 衝突フィルタ →
// 剛体アタッチ → ジョイント配置 → 後処理(遅延親子付けとミュート解除) で、
// Clean はこれを逆順に巻き戻す。
package rigging

import (
	"fmt"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
	"github.com/miu200521358/mu_mmd_rig/pkg/usecase/port/mscene"
)

// DefaultNonCollisionThreshold は近接非衝突判定の既定距離係数。
const DefaultNonCollisionThreshold = 1.5

// Model はリグルート配下の剛体・ジョイント・アーマチュアを統括する。
type Model struct {
	scene mscene.SceneGraph
	root  *model.Object

	// NonCollisionThreshold はBuildが使う近接非衝突判定の距離係数。
	NonCollisionThreshold float64

	// ctx は1回の組立セッションに閉じた一時状態。組立完了後はnilへ戻る。
	ctx *buildContext
}

// NewModel はリグルートを検証してModelを生成する。
// ルート種別でないオブジェクトはいかなる変更よりも先に拒否する。
func NewModel(scene mscene.SceneGraph, root *model.Object) (*Model, error) {
	if scene == nil {
		return nil, fmt.Errorf("シーングラフが設定されていません")
	}
	if root == nil || root.Type != model.TypeRoot {
		name := ""
		if root != nil {
			name = root.Name
		}
		return nil, fmt.Errorf("リグルートオブジェクトではありません: %s", name)
	}
	return &Model{
		scene:                 scene,
		root:                  root,
		NonCollisionThreshold: DefaultNonCollisionThreshold,
	}, nil
}

// RootObject はリグルートを返す。
func (m *Model) RootObject() *model.Object {
	return m.root
}

// Armature はルート直下のアーマチュアオブジェクトを返す。
func (m *Model) Armature() *model.Object {
	return m.childByType(model.TypeArmature)
}

// RigidGroupObject は剛体を平置きするグループオブジェクトを返す。
func (m *Model) RigidGroupObject() *model.Object {
	return m.childByType(model.TypeRigidGroup)
}

// JointGroupObject はジョイントのグループオブジェクトを返す。
func (m *Model) JointGroupObject() *model.Object {
	return m.childByType(model.TypeJointGroup)
}

// TemporaryGroupObject は一時オブジェクトのグループオブジェクトを返す。
func (m *Model) TemporaryGroupObject() *model.Object {
	return m.childByType(model.TypeTemporaryGroup)
}

func (m *Model) childByType(objType model.ObjectType) *model.Object {
	for _, obj := range m.scene.Objects() {
		if obj.Parent == m.root && obj.Type == objType {
			return obj
		}
	}
	return nil
}

// RigidBodies はルート配下の剛体オブジェクトを返す。
func (m *Model) RigidBodies() []*model.Object {
	var objs []*model.Object
	for _, obj := range m.scene.ObjectsUnder(m.root) {
		if model.IsRigidBodyObject(obj) {
			objs = append(objs, obj)
		}
	}
	return objs
}

// Joints はルート配下のジョイントオブジェクトを返す。
func (m *Model) Joints() []*model.Object {
	var objs []*model.Object
	for _, obj := range m.scene.ObjectsUnder(m.root) {
		if model.IsJointObject(obj) {
			objs = append(objs, obj)
		}
	}
	return objs
}

// TemporaryObjects はルート配下の一時オブジェクトを返す。
func (m *Model) TemporaryObjects() []*model.Object {
	var objs []*model.Object
	for _, obj := range m.scene.ObjectsUnder(m.root) {
		if model.IsTemporaryObject(obj) {
			objs = append(objs, obj)
		}
	}
	return objs
}

// IsBuilt は組立済み状態を返す。
func (m *Model) IsBuilt() bool {
	built, _ := m.root.Props[model.IsBuiltPropKey].(bool)
	return built
}

func (m *Model) setBuilt(built bool) {
	m.root.Props[model.IsBuiltPropKey] = built
}

// setIKMuted は対象ボーンのIKコンストレイントのミュート状態を切り替える。
func setIKMuted(armature *model.Object, boneName string, muted bool) {
	if armature == nil || armature.Armature == nil {
		return
	}
	bone, ok := armature.Armature.Bone(boneName)
	if !ok {
		return
	}
	for _, c := range bone.Constraints {
		if c.Kind == model.BoneConstraintIK {
			c.Mute = muted
		}
	}
}
