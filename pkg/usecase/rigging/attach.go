// 指示: miu200521358
package rigging

import (
	"fmt"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
	"github.com/miu200521358/mu_mmd_rig/pkg/infra/logging"
)

// UpdateRigid は剛体1個のアタッチ処理(Phase B)を実行する。
// パラメータ編集後の単体再実行にも使える。物理バインディングの無い
// 剛体は何もせず正常終了する。
func (m *Model) UpdateRigid(rigid *model.Object) error {
	if !model.IsRigidBodyObject(rigid) {
		return fmt.Errorf("剛体オブジェクトではありません: %s", rigid.Name)
	}
	rb := rigid.RigidBody
	if rb == nil || !rb.Bound {
		return nil
	}
	ctx := m.ensureContext()

	var armature *model.Object
	var boneName string
	if relation, ok := rigid.Constraint(model.ParentRelationConstraintName); ok {
		armature = relation.Target
		boneName = relation.Subtarget
	}

	rb.Kinematic = rb.Mode == model.ModeStatic

	if armature != nil && boneName != "" && armature.Armature != nil {
		bone, ok := armature.Armature.Bone(boneName)
		if !ok {
			return fmt.Errorf("追従先ボーンが見つかりません: %s (%s)", boneName, rigid.Name)
		}

		// ボーン静止姿勢相対の変換。ジョイント配置と擬似子の追従にも使う。
		boneMat := bone.PoseMatrix.Muled(bone.RestMatrix.Inverted())
		ctx.rigidBodyMatrixMap[rigid] = boneMat

		switch rb.Mode {
		case model.ModeStatic:
			m.attachStatic(rigid, armature, boneName, boneMat)
		case model.ModeDynamic, model.ModeDynamicBone:
			m.attachDynamic(rigid, armature, bone, boneName, boneMat)
		}
	}

	switch rb.Shape {
	case model.ShapeSphere, model.ShapeBox, model.ShapeCapsule:
		rb.CollisionShape = rb.Shape
	default:
		return fmt.Errorf("%w: %s (%s)", model.ErrInvalidShapeType, rb.Shape, rigid.Name)
	}
	return nil
}

// attachStatic はワールド変換と拡縮を保ったまま剛体をボーンへ親子付けする。
func (m *Model) attachStatic(rigid *model.Object, armature *model.Object, boneName string, boneMat mmath.Mat4) {
	origScale := rigid.Scale
	toWorld := rigid.MatrixWorld().Muled(rigid.MatrixLocal().Inverted())
	world := toWorld.Muled(boneMat.Muled(rigid.MatrixLocal()))

	rigid.Parent = armature
	rigid.ParentKind = model.ParentBone
	rigid.ParentBoneName = boneName
	rigid.SetMatrixWorld(world)
	rigid.Scale = origScale

	m.propagateFakeChildren(rigid, boneMat)
}

// attachDynamic は剛体を再親子付けせず、ボーン整列位置へ直接配置して
// 追従プロキシの生成/所有権解決を行う。
func (m *Model) attachDynamic(rigid *model.Object, armature *model.Object, bone *model.Bone, boneName string, boneMat mmath.Mat4) {
	rb := rigid.RigidBody

	t, r, _ := boneMat.Muled(rigid.MatrixLocal()).Decompose()
	rigid.Translation = t
	rigid.Rotation = r

	m.propagateFakeChildren(rigid, boneMat)

	ctx := m.ensureContext()
	if track, ok := bone.Constraint(model.RigidTrackConstraintName); !ok {
		empty := m.scene.NewEmpty("mu_bonetrack", model.TypeTrackTarget)
		empty.Parent = m.TemporaryGroupObject()
		empty.SetMatrixWorld(armature.MatrixWorld().Muled(bone.PoseMatrix))
		empty.Hide = true

		// 以後この剛体の姿勢はシミュレーションとプロキシだけで駆動される
		rb.Bone = boneName
		rigid.RemoveConstraint(model.ParentRelationConstraintName)

		// 実際のシーン親子付けはpostBuildまで遅延する
		ctx.emptyParentMap[empty] = rigid

		kind := model.BoneConstraintCopyTransforms
		if rb.Mode == model.ModeDynamicBone {
			kind = model.BoneConstraintCopyRotation
		}
		bone.AddConstraint(&model.BoneConstraint{
			Name:      model.RigidTrackConstraintName,
			Kind:      kind,
			Mute:      true,
			Influence: 1,
			Target:    empty,
		})
	} else {
		empty := track.Target
		ori := ctx.emptyParentMap[empty]
		if ori != nil && ori.RigidBody != nil && ori.RigidBody.Bound && rb.Mass > ori.RigidBody.Mass {
			// 質量の大きい剛体がボーン追従の所有権を奪う。同値なら現状維持。
			logging.DefaultLogger().Debug("        * Bone (%s): change track target from [%s] to [%s]",
				boneName, ori.Name, rigid.Name)
			rb.Bone = boneName
			rigid.RemoveConstraint(model.ParentRelationConstraintName)
			ctx.emptyParentMap[empty] = rigid

			// 前所有者は次回組立で再評価されるようボーン設定から関係を復元する
			relation, _ := ori.EnsureParentRelation(armature)
			relation.Mute = true
		} else if ori != nil {
			logging.DefaultLogger().Debug("        * Bone (%s): track target [%s]", boneName, ori.Name)
		}
	}
}

// propagateFakeChildren はアンカーのボーン相対行列を擬似子へ伝播する。
// 擬似子は直接の親子付けを受けず、位置と回転だけが書き換わる。
func (m *Model) propagateFakeChildren(anchor *model.Object, boneMat mmath.Mat4) {
	ctx := m.ensureContext()
	for _, child := range ctx.fakeParentMap[anchor] {
		logging.DefaultLogger().Debug("          - fake child: %s", child.Name)
		t, r, _ := boneMat.Muled(child.MatrixLocal()).Decompose()
		child.Translation = t
		child.Rotation = r
	}
}
