// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/miu200521358/mu_rig2scene/pkg/adapter/io_rig/pmde"
	"github.com/miu200521358/mu_rig2scene/pkg/adapter/io_scene"
	"github.com/miu200521358/mu_rig2scene/pkg/adapter/rpresenter"
	"github.com/miu200521358/mu_rig2scene/pkg/adapter/rpresenter/messages"
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/rinteractor"
	"github.com/rs/zerolog"
)

const defaultPhysicsLayer = "cloth"

// options はCLI引数を保持する。
type options struct {
	bonePath     string
	rigidPath    string
	jointPath    string
	skeletonPath string
	outPath      string
	scale        float64
	layer        string
	verbose      bool
}

// main は物理リグ記述子のシーン取込を実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}
	logger := newLogger(out, opts.verbose)

	boneText, err := readDescriptorFile(opts.bonePath)
	if err != nil {
		return err
	}
	rigidText, err := readDescriptorFile(opts.rigidPath)
	if err != nil {
		return err
	}
	jointText, err := readDescriptorFile(opts.jointPath)
	if err != nil {
		return err
	}

	sceneRepository := io_scene.NewSceneRepository()
	world, root, err := sceneRepository.Load(opts.skeletonPath)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageSkeletonLoadFailed, err)
	}

	uc := rinteractor.NewRig2SceneUsecase(rinteractor.Rig2SceneUsecaseDeps{
		RigReader: pmde.NewRigRepository(),
		Host:      world,
	})

	session, err := uc.Parse(nil, boneText, rigidText, jointText)
	if err != nil {
		return err
	}
	logger.Info().
		Int("bones", len(session.BoneRecords())).
		Int("rigid_bodies", len(session.RigidBodyRecords())).
		Int("joints", len(session.JointRecords())).
		Msg(messages.LogParseSuccess)

	report, err := uc.Synthesize(rinteractor.SynthesizeRequest{
		Root:             root,
		RigidBodyRecords: session.RigidBodyRecords(),
		JointRecords:     session.JointRecords(),
		Scale:            opts.scale,
		PhysicsLayer:     opts.layer,
		ProgressReporter: rpresenter.NewProgressLogger(logger),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageSynthesisFailed, err)
	}
	rpresenter.LogReport(logger, report)

	if opts.outPath != "" {
		if err := sceneRepository.Save(opts.outPath, world, root); err != nil {
			return err
		}
		logger.Info().Str("path", opts.outPath).Msg(messages.LogSceneSaved)
	}
	return nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_rig2scene", flag.ContinueOnError)
	fs.SetOutput(errOut)

	bone := fs.String("bone", "", messages.UsageBonePath)
	rigid := fs.String("rigid", "", messages.UsageRigidPath)
	joint := fs.String("joint", "", messages.UsageJointPath)
	skeleton := fs.String("skeleton", "", messages.UsageSkeletonPath)
	out := fs.String("out", "", messages.UsageOutPath)
	scale := fs.Float64("scale", 1.0, messages.UsageScale)
	layer := fs.String("layer", defaultPhysicsLayer, messages.UsageLayer)
	verbose := fs.Bool("verbose", false, messages.UsageVerbose)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *bone == "" {
		return options{}, errors.New(messages.MessageBoneRequired)
	}
	if *rigid == "" {
		return options{}, errors.New(messages.MessageRigidRequired)
	}
	if *joint == "" {
		return options{}, errors.New(messages.MessageJointRequired)
	}
	if *skeleton == "" {
		return options{}, errors.New(messages.MessageSkeletonRequired)
	}

	return options{
		bonePath:     *bone,
		rigidPath:    *rigid,
		jointPath:    *joint,
		skeletonPath: *skeleton,
		outPath:      *out,
		scale:        *scale,
		layer:        *layer,
		verbose:      *verbose,
	}, nil
}

// readDescriptorFile は記述子CSVを読み取る。文字コードの正規化は解析側で行う。
func readDescriptorFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", messages.MessageDescriptorReadFailed, path, err)
	}
	return string(b), nil
}

// newLogger はCLI用の構造化ロガーを生成する。
func newLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).Level(level).With().Timestamp().Logger()
}
