// 指示: miu200521358
package rigging

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_mmd_rig/pkg/adapter/scenegraph"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
)

// rigFixture はテスト用のリグシーン一式を保持する。
type rigFixture struct {
	scene    *scenegraph.Scene
	root     *model.Object
	arm      *model.Object
	rigidGrp *model.Object
	jointGrp *model.Object
	tmpGrp   *model.Object
}

func newRigFixture(t *testing.T) *rigFixture {
	t.Helper()
	scene := scenegraph.NewScene()

	root := scene.NewEmpty("モデル", model.TypeRoot)

	arm := scene.NewEmpty("armature", model.TypeArmature)
	arm.Parent = root
	arm.Armature = model.NewArmature()

	rigidGrp := scene.NewEmpty("rigidbodies", model.TypeRigidGroup)
	rigidGrp.Parent = root
	jointGrp := scene.NewEmpty("joints", model.TypeJointGroup)
	jointGrp.Parent = root
	tmpGrp := scene.NewEmpty("temporary", model.TypeTemporaryGroup)
	tmpGrp.Parent = root

	return &rigFixture{
		scene:    scene,
		root:     root,
		arm:      arm,
		rigidGrp: rigidGrp,
		jointGrp: jointGrp,
		tmpGrp:   tmpGrp,
	}
}

func (f *rigFixture) newModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(f.scene, f.root)
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}
	return m
}

// addBone は静止姿勢とポーズを指定してボーンを追加する。
func (f *rigFixture) addBone(name string, rest, pose mmath.Mat4, withIK bool) *model.Bone {
	bone := model.NewBone(name, rest)
	bone.PoseMatrix = pose
	if withIK {
		bone.AddConstraint(&model.BoneConstraint{
			Name:      "ik",
			Kind:      model.BoneConstraintIK,
			Influence: 1,
		})
	}
	f.arm.Armature.AppendBone(bone)
	return bone
}

// addPosedBone は平行移動した静止姿勢と回転込みのポーズを持つボーンを追加する。
func (f *rigFixture) addPosedBone(name string, restY float64, withIK bool) *model.Bone {
	rest := mmath.NewMat4FromTranslation(mmath.NewVec3(0, restY, 0))
	pose := mmath.NewMat4FromTRS(
		mmath.NewVec3(0.5, restY, 0),
		mmath.NewQuaternionFromAxisAngle(mmath.NewVec3(0, 0, 1), math.Pi/6),
		mmath.OneVec3(),
	)
	return f.addBone(name, rest, pose, withIK)
}

// addRigidBody は球形状の剛体を剛体グループへ追加する。
func (f *rigFixture) addRigidBody(name string, mode model.Mode, boneName string, mass float64, translation mmath.Vec3) *model.Object {
	return f.addShapedRigidBody(name, mode, boneName, mass, translation, model.ShapeSphere, 0.5)
}

// addShapedRigidBody は形状と半径を指定して剛体を追加する。
func (f *rigFixture) addShapedRigidBody(name string, mode model.Mode, boneName string, mass float64, translation mmath.Vec3, shape model.Shape, radius float64) *model.Object {
	rigid := f.scene.NewEmpty(name, model.TypeRigidBody)
	rigid.Parent = f.rigidGrp
	rigid.Translation = translation
	rigid.RigidBody = &model.RigidBodySettings{
		Shape: shape,
		Mode:  mode,
		Mass:  mass,
		Bone:  boneName,
		Bound: true,
	}
	rigid.BoundBox = model.NewBoundBox(
		mmath.NewVec3(-radius, -radius, -radius),
		mmath.NewVec3(radius, radius, radius),
	)

	relation := &model.ChildOfConstraint{
		Name:    model.ParentRelationConstraintName,
		Inverse: mmath.NewMat4Ident(),
	}
	if boneName != "" {
		if bone, ok := f.arm.Armature.Bone(boneName); ok {
			relation.Target = f.arm
			relation.Subtarget = boneName
			relation.Inverse = f.arm.MatrixWorld().Muled(bone.PoseMatrix).Inverted()
		}
	}
	rigid.AddConstraint(relation)
	return rigid
}

// addJoint は2剛体を結ぶジョイントを追加する。
func (f *rigFixture) addJoint(name string, obj1, obj2 *model.Object, translation mmath.Vec3) *model.Object {
	joint := f.scene.NewEmpty(name, model.TypeJoint)
	joint.Parent = f.jointGrp
	joint.Translation = translation
	joint.Joint = &model.JointSettings{
		Object1: obj1,
		Object2: obj2,
		Bound:   true,
	}
	return joint
}

// boneRelativeMatrix はボーンの静止姿勢相対行列を返す。
func (f *rigFixture) boneRelativeMatrix(t *testing.T, boneName string) mmath.Mat4 {
	t.Helper()
	bone, ok := f.arm.Armature.Bone(boneName)
	if !ok {
		t.Fatalf("bone not found: %s", boneName)
	}
	return bone.PoseMatrix.Muled(bone.RestMatrix.Inverted())
}

// transformState は正確な比較のための位置・回転の写し。
type transformState struct {
	translation mmath.Vec3
	rotation    mmath.Quaternion
}

func captureTransforms(objs []*model.Object) map[string]transformState {
	states := map[string]transformState{}
	for _, obj := range objs {
		states[obj.Name] = transformState{translation: obj.Translation, rotation: obj.Rotation}
	}
	return states
}

func requireSameTransforms(t *testing.T, want, got map[string]transformState) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("object count mismatch: want=%d got=%d", len(want), len(got))
	}
	for name, w := range want {
		g, ok := got[name]
		if !ok {
			t.Fatalf("object missing: %s", name)
		}
		if w.translation != g.translation {
			t.Fatalf("%s: translation not restored exactly: want=%v got=%v", name, w.translation, g.translation)
		}
		if w.rotation != g.rotation {
			t.Fatalf("%s: rotation not restored exactly: want=%v got=%v", name, w.rotation, g.rotation)
		}
	}
}

// nonCollisionProxies はシーン中の非衝突プロキシを返す。
func (f *rigFixture) nonCollisionProxies() []*model.Object {
	var objs []*model.Object
	for _, obj := range f.scene.Objects() {
		if obj.Type == model.TypeNonCollisionConstraint {
			objs = append(objs, obj)
		}
	}
	return objs
}

// trackTargets はシーン中の追従プロキシを返す。
func (f *rigFixture) trackTargets() []*model.Object {
	var objs []*model.Object
	for _, obj := range f.scene.Objects() {
		if obj.Type == model.TypeTrackTarget {
			objs = append(objs, obj)
		}
	}
	return objs
}
