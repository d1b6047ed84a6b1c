// 指示: miu200521358

// Package io_scene はリグシーン記述ファイル(YAML)の読み書きを提供する。
// モデルファイル(PMX等)の入出力ではなく、リグ構成の固定化と検証のための
// フィクスチャ形式である。
package io_scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_mmd_rig/pkg/adapter/scenegraph"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
)

// SceneRepository はリグシーンの読み書きを担う。
type SceneRepository struct{}

// NewSceneRepository はリポジトリを生成する。
func NewSceneRepository() *SceneRepository {
	return &SceneRepository{}
}

// CanLoad は対応拡張子か判定する。
func (r *SceneRepository) CanLoad(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load はリグシーンを読み込み、シーンとリグルートを返す。
func (r *SceneRepository) Load(path string) (*scenegraph.Scene, *model.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("シーンファイルの読み込みに失敗しました: %w", err)
	}
	return r.LoadBytes(data)
}

// LoadBytes はYAMLバイト列からリグシーンを構築する。
func (r *SceneRepository) LoadBytes(data []byte) (*scenegraph.Scene, *model.Object, error) {
	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("シーンファイルの解析に失敗しました: %w", err)
	}
	return buildScene(&doc)
}

// Save は現在のシーン状態をYAMLへ書き出す。
func (r *SceneRepository) Save(path string, scene *scenegraph.Scene, root *model.Object) error {
	data, err := r.SaveBytes(scene, root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("シーンファイルの書き出しに失敗しました: %w", err)
	}
	return nil
}

// SaveBytes は現在のシーン状態をYAMLバイト列へ変換する。
func (r *SceneRepository) SaveBytes(scene *scenegraph.Scene, root *model.Object) ([]byte, error) {
	doc := snapshotScene(scene, root)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("シーンのYAML変換に失敗しました: %w", err)
	}
	return data, nil
}

// buildScene はドキュメントからシーングラフを組み立てる。
// ルート直下にアーマチュア・剛体グループ・ジョイントグループ・一時グループを
// 配置し、剛体は剛体グループへ平置きする。
func buildScene(doc *sceneDoc) (*scenegraph.Scene, *model.Object, error) {
	scene := scenegraph.NewScene()

	name := doc.Name
	if name == "" {
		name = "rig"
	}
	root := scene.NewEmpty(name, model.TypeRoot)

	armObj := scene.NewEmpty(name+"_arm", model.TypeArmature)
	armObj.Parent = root
	armObj.Armature = model.NewArmature()
	for _, boneDoc := range doc.Armature.Bones {
		rest := boneDoc.Rest.mat4()
		bone := model.NewBone(boneDoc.Name, rest)
		if boneDoc.Pose != nil {
			bone.PoseMatrix = boneDoc.Pose.mat4()
		}
		if boneDoc.IK {
			bone.AddConstraint(&model.BoneConstraint{
				Name:      "ik",
				Kind:      model.BoneConstraintIK,
				Influence: 1,
			})
		}
		armObj.Armature.AppendBone(bone)
	}

	rigidGrp := scene.NewEmpty("rigidbodies", model.TypeRigidGroup)
	rigidGrp.Parent = root
	jointGrp := scene.NewEmpty("joints", model.TypeJointGroup)
	jointGrp.Parent = root
	tmpGrp := scene.NewEmpty("temporary", model.TypeTemporaryGroup)
	tmpGrp.Parent = root

	rigidByName := map[string]*model.Object{}
	for _, rd := range doc.RigidBodies {
		rigid, err := buildRigidBody(scene, armObj, rigidGrp, &rd)
		if err != nil {
			return nil, nil, err
		}
		rigidByName[rigid.Name] = rigid
	}

	for _, jd := range doc.Joints {
		if _, err := buildJoint(scene, jointGrp, rigidByName, &jd); err != nil {
			return nil, nil, err
		}
	}

	return scene, root, nil
}

func buildRigidBody(scene *scenegraph.Scene, armObj, rigidGrp *model.Object, rd *rigidBodyDoc) (*model.Object, error) {
	mode, err := parseMode(rd.Mode)
	if err != nil {
		return nil, fmt.Errorf("剛体 %s: %w", rd.Name, err)
	}

	rigid := scene.NewEmpty(rd.Name, model.TypeRigidBody)
	rigid.Parent = rigidGrp
	rigid.Translation = vec3(rd.Translation)
	rigid.Rotation = quaternion(rd.Rotation)

	settings := &model.RigidBodySettings{
		Shape:          model.Shape(rd.Shape),
		Mode:           mode,
		CollisionGroup: rd.CollisionGroup,
		Mass:           rd.Mass,
		Friction:       rd.Friction,
		Restitution:    rd.Restitution,
		Bone:           rd.Bone,
		Bound:          !rd.Unbound,
	}
	for _, g := range rd.CollisionIgnores {
		if g >= 0 && g < model.CollisionGroupCount {
			settings.CollisionGroupMask[g] = true
		}
	}
	rigid.RigidBody = settings

	min, max, err := boundBoxForShape(model.Shape(rd.Shape), rd.Size)
	if err != nil {
		return nil, fmt.Errorf("剛体 %s: %w", rd.Name, err)
	}
	rigid.BoundBox = model.NewBoundBox(min, max)

	relation := &model.ChildOfConstraint{
		Name:    model.ParentRelationConstraintName,
		Inverse: mmath.NewMat4Ident(),
	}
	if rd.Bone != "" {
		if bone, ok := armObj.Armature.Bone(rd.Bone); ok {
			relation.Target = armObj
			relation.Subtarget = rd.Bone
			factor := armObj.MatrixWorld().Muled(bone.PoseMatrix)
			relation.Inverse = factor.Inverted()
		} else {
			return nil, fmt.Errorf("剛体 %s: 追従先ボーンが見つかりません: %s", rd.Name, rd.Bone)
		}
	}
	rigid.AddConstraint(relation)
	return rigid, nil
}

func buildJoint(scene *scenegraph.Scene, jointGrp *model.Object, rigidByName map[string]*model.Object, jd *jointDoc) (*model.Object, error) {
	obj1, ok := rigidByName[jd.RigidBody1]
	if !ok {
		return nil, fmt.Errorf("ジョイント %s: 剛体が見つかりません: %s", jd.Name, jd.RigidBody1)
	}
	obj2, ok := rigidByName[jd.RigidBody2]
	if !ok {
		return nil, fmt.Errorf("ジョイント %s: 剛体が見つかりません: %s", jd.Name, jd.RigidBody2)
	}

	joint := scene.NewEmpty(jd.Name, model.TypeJoint)
	joint.Parent = jointGrp
	joint.Translation = vec3(jd.Translation)
	joint.Rotation = quaternion(jd.Rotation)
	joint.Joint = &model.JointSettings{
		Object1:           obj1,
		Object2:           obj2,
		LinearLowerLimit:  vec3(jd.LinearLower),
		LinearUpperLimit:  vec3(jd.LinearUpper),
		AngularLowerLimit: vec3(jd.AngularLower),
		AngularUpperLimit: vec3(jd.AngularUpper),
		LinearSpring:      vec3(jd.LinearSpring),
		AngularSpring:     vec3(jd.AngularSpring),
		Bound:             !jd.Unbound,
	}
	return joint, nil
}

// boundBoxForShape は形状パラメータからバウンディングボックスを逆算する。
// GetRigidBodySizeで元のパラメータへ戻る寸法にする。
func boundBoxForShape(shape model.Shape, size [3]float64) (mmath.Vec3, mmath.Vec3, error) {
	switch shape {
	case model.ShapeSphere:
		r := size[0]
		return mmath.NewVec3(-r, -r, -r), mmath.NewVec3(r, r, r), nil
	case model.ShapeBox:
		return mmath.NewVec3(-size[0], -size[1], -size[2]), mmath.NewVec3(size[0], size[1], size[2]), nil
	case model.ShapeCapsule:
		r, h := size[0], size[1]
		half := h/2 + r
		return mmath.NewVec3(-r, -r, -half), mmath.NewVec3(r, r, half), nil
	default:
		return mmath.ZeroVec3(), mmath.ZeroVec3(), fmt.Errorf("%w: %s", model.ErrInvalidShapeType, shape)
	}
}

func parseMode(mode string) (model.Mode, error) {
	switch mode {
	case "STATIC", "":
		return model.ModeStatic, nil
	case "DYNAMIC":
		return model.ModeDynamic, nil
	case "DYNAMIC_BONE":
		return model.ModeDynamicBone, nil
	default:
		return model.ModeStatic, fmt.Errorf("不正な剛体種別です: %s", mode)
	}
}

func modeName(mode model.Mode) string {
	switch mode {
	case model.ModeDynamic:
		return "DYNAMIC"
	case model.ModeDynamicBone:
		return "DYNAMIC_BONE"
	default:
		return "STATIC"
	}
}

func vec3(v [3]float64) mmath.Vec3 {
	return mmath.NewVec3(v[0], v[1], v[2])
}

func quaternion(q [4]float64) mmath.Quaternion {
	if q == [4]float64{} {
		return mmath.QuaternionIdent()
	}
	return mmath.NewQuaternion(q[0], q[1], q[2], q[3])
}
