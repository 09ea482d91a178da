package renamer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vcrfs "vcr-go/internal/fs"
	"vcr-go/internal/renamer"
	"vcr-go/internal/testutil"
)

func planTree(t *testing.T, pipeline *renamer.Pipeline, ignore []string, entries ...string) (*renamer.Plan, error) {
	t.Helper()
	afs := afero.NewMemMapFs()
	testutil.WriteTree(t, afs, "/r", entries...)
	fsmgr := vcrfs.NewFilesystemManager(afs, ignore)

	root, err := fsmgr.Resolve("/r")
	require.NoError(t, err)
	return renamer.NewPlanner(fsmgr, pipeline, renamer.NewNopLogger()).Plan(root)
}

func defaultPipeline() *renamer.Pipeline {
	return renamer.NewPipeline(renamer.DefaultRuleSet(), " [Pluralsight]")
}

func TestPlan_CourseTree(t *testing.T) {
	plan, err := planTree(t, defaultPipeline(), nil,
		"1notes.txt",
		"1readme.txt",
		"Go/image.jpg",
		"Go/11 Introduction/11 Welcome.mp4",
		"Go/11 Introduction/12 Overview.mp4",
		"Go/12 Basics/1clip.mp4",
		"Go/12 Basics/1clip.srt",
	)
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/Go/11 Introduction", To: "/r/Go/1 Introduction", Rule: renamer.RuleStripPrefix, IsDir: true},
		{From: "/r/Go/12 Basics", To: "/r/Go/2 Basics", Rule: renamer.RuleStripPrefix, IsDir: true},
		{From: "/r/Go/1 Introduction/11 Welcome.mp4", To: "/r/Go/1 Introduction/1 Welcome.mp4", Rule: renamer.RuleStripPrefix},
		{From: "/r/Go/1 Introduction/12 Overview.mp4", To: "/r/Go/1 Introduction/2 Overview.mp4", Rule: renamer.RuleStripPrefix},
		{From: "/r/Go/2 Basics/1clip.mp4", To: "/r/Go/2 Basics/clip.mp4", Rule: renamer.RuleStripPrefix},
		{From: "/r/Go/2 Basics/1clip.srt", To: "/r/Go/2 Basics/clip.srt", Rule: renamer.RuleStripPrefix},
		{From: "/r/Go/image.jpg", To: "/r/Go/poster.jpg", Rule: renamer.RuleReplaceImage},
		{From: "/r/Go", To: "/r/Go [Pluralsight]", Rule: renamer.RuleAppendPlatform, IsDir: true},
	}
	assert.Equal(t, want, plan.Operations)
	assert.Equal(t, "/r", plan.Root)
}

func TestPlan_LeavesDistinctLeadingDigits(t *testing.T) {
	plan, err := planTree(t, defaultPipeline(), nil,
		"1Module/1file.mp4",
		"1Module/2file.mp4",
		"1Module/image.jpg",
		"2Module/1file.mp4",
		"2Module/2file.mp4",
	)
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/1Module/image.jpg", To: "/r/1Module/poster.jpg", Rule: renamer.RuleReplaceImage},
		{From: "/r/1Module", To: "/r/1Module [Pluralsight]", Rule: renamer.RuleAppendPlatform, IsDir: true},
		{From: "/r/2Module", To: "/r/2Module [Pluralsight]", Rule: renamer.RuleAppendPlatform, IsDir: true},
	}
	assert.Equal(t, want, plan.Operations)
}

func TestPlan_SingleEntryNeverStripped(t *testing.T) {
	plan, err := planTree(t, defaultPipeline(), nil, "Course/1Only/1clip.mp4")
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/Course", To: "/r/Course [Pluralsight]", Rule: renamer.RuleAppendPlatform, IsDir: true},
	}
	assert.Equal(t, want, plan.Operations)
}

func TestPlan_OrdersRenamesOntoNamesBeingVacated(t *testing.T) {
	plan, err := planTree(t, renamer.NewPipeline(renamer.RuleSet{StripPrefix: true}, ""), nil,
		"Course/1Module/",
		"Course/11Module/",
	)
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/Course/1Module", To: "/r/Course/Module", Rule: renamer.RuleStripPrefix, IsDir: true},
		{From: "/r/Course/11Module", To: "/r/Course/1Module", Rule: renamer.RuleStripPrefix, IsDir: true},
	}
	assert.Equal(t, want, plan.Operations)
}

func TestPlan_CollisionWithSiblingFile(t *testing.T) {
	_, err := planTree(t, defaultPipeline(), nil,
		"Course/1a/",
		"Course/1b/",
		"Course/a",
	)

	var collision *renamer.CollisionError
	require.True(t, errors.As(err, &collision), "err = %v", err)
	assert.Equal(t, "a", collision.Target)
	assert.Equal(t, "/r/Course", collision.Dir)
	assert.Equal(t, renamer.RuleStripPrefix, collision.Rule)
}

func TestPlan_SuffixCollidesWithExistingFolder(t *testing.T) {
	_, err := planTree(t, defaultPipeline(), nil,
		"Go/",
		"Go [Pluralsight]/",
	)
	assert.True(t, errors.Is(err, renamer.ErrCollision), "err = %v", err)
}

func TestPlan_ImageCollidesWithExistingPoster(t *testing.T) {
	_, err := planTree(t, defaultPipeline(), nil,
		"Go/image.jpg",
		"Go/poster.jpg",
	)
	assert.True(t, errors.Is(err, renamer.ErrCollision), "err = %v", err)
}

func TestPlan_IgnoredEntriesStayOutOfSiblingSets(t *testing.T) {
	plan, err := planTree(t, renamer.NewPipeline(renamer.RuleSet{StripPrefix: true}, ""), []string{"*.part"},
		"Course/1a.mp4",
		"Course/1b.mp4",
		"Course/2c.mp4.part",
	)
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/Course/1a.mp4", To: "/r/Course/a.mp4", Rule: renamer.RuleStripPrefix},
		{From: "/r/Course/1b.mp4", To: "/r/Course/b.mp4", Rule: renamer.RuleStripPrefix},
	}
	assert.Equal(t, want, plan.Operations)
}

func TestPlan_AllRulesEnabled(t *testing.T) {
	rules := renamer.RuleSet{StripPrefix: true, ReplaceImage: true, IncreaseIndex: true, CleanName: true}
	plan, err := planTree(t, renamer.NewPipeline(rules, ""), nil,
		"Course/1.Intro-.mp4",
		"Course/2.Setup-.mp4",
	)
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/Course/1.Intro-.mp4", To: "/r/Course/2.Intro-.mp4", Rule: renamer.RuleIncreaseIndex},
		{From: "/r/Course/2.Setup-.mp4", To: "/r/Course/3.Setup-.mp4", Rule: renamer.RuleIncreaseIndex},
		{From: "/r/Course/2.Intro-.mp4", To: "/r/Course/2.Intro.mp4", Rule: renamer.RuleCleanName},
		{From: "/r/Course/3.Setup-.mp4", To: "/r/Course/3.Setup.mp4", Rule: renamer.RuleCleanName},
	}
	assert.Equal(t, want, plan.Operations)
}

func TestPlan_DirectoryRulesRunBeforeDescending(t *testing.T) {
	rules := renamer.RuleSet{StripPrefix: true, CleanName: true}
	plan, err := planTree(t, renamer.NewPipeline(rules, ""), nil,
		"Course/1Part-One/1a.mp4",
		"Course/1Part-One/1b.mp4",
		"Course/1Part-Two/",
	)
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/Course/1Part-One", To: "/r/Course/Part-One", Rule: renamer.RuleStripPrefix, IsDir: true},
		{From: "/r/Course/1Part-Two", To: "/r/Course/Part-Two", Rule: renamer.RuleStripPrefix, IsDir: true},
		{From: "/r/Course/Part-One", To: "/r/Course/Part - One", Rule: renamer.RuleCleanName, IsDir: true},
		{From: "/r/Course/Part-Two", To: "/r/Course/Part - Two", Rule: renamer.RuleCleanName, IsDir: true},
		{From: "/r/Course/Part - One/1a.mp4", To: "/r/Course/Part - One/a.mp4", Rule: renamer.RuleStripPrefix},
		{From: "/r/Course/Part - One/1b.mp4", To: "/r/Course/Part - One/b.mp4", Rule: renamer.RuleStripPrefix},
	}
	assert.Equal(t, want, plan.Operations)
}

func TestPlan_RootMustBeDirectory(t *testing.T) {
	afs := afero.NewMemMapFs()
	testutil.WriteTree(t, afs, "/r", "clip.mp4")
	fsmgr := vcrfs.NewFilesystemManager(afs, nil)

	file, err := fsmgr.Resolve("/r/clip.mp4")
	require.NoError(t, err)

	_, err = renamer.NewPlanner(fsmgr, defaultPipeline(), renamer.NewNopLogger()).Plan(file)
	assert.True(t, errors.Is(err, renamer.ErrNotDirectory))
}

func TestPlan_DoesNotTouchFilesystem(t *testing.T) {
	afs := afero.NewMemMapFs()
	testutil.WriteTree(t, afs, "/r", "Go/1a.mp4", "Go/1b.mp4", "Go/image.jpg")
	before := testutil.ReadTree(t, afs, "/r")

	fsmgr := vcrfs.NewFilesystemManager(afs, nil)
	root, err := fsmgr.Resolve("/r")
	require.NoError(t, err)

	plan, err := renamer.NewPlanner(fsmgr, defaultPipeline(), renamer.NewNopLogger()).Plan(root)
	require.NoError(t, err)
	assert.NotZero(t, plan.Len())
	assert.Equal(t, before, testutil.ReadTree(t, afs, "/r"))
}

func TestPlan_IncreaseIndexShiftsAlongAChain(t *testing.T) {
	plan, err := planTree(t, renamer.NewPipeline(renamer.RuleSet{IncreaseIndex: true}, ""), nil,
		"Course/1.a.mp4",
		"Course/2.a.mp4",
	)
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/Course/2.a.mp4", To: "/r/Course/3.a.mp4", Rule: renamer.RuleIncreaseIndex},
		{From: "/r/Course/1.a.mp4", To: "/r/Course/2.a.mp4", Rule: renamer.RuleIncreaseIndex},
	}
	assert.Equal(t, want, plan.Operations)
}

func TestPlan_FailsOnUnreadableIgnoreFile(t *testing.T) {
	afs := afero.NewMemMapFs()
	testutil.WriteTree(t, afs, "/r", "Course/1a.mp4", "Course/1b.mp4", "Course/1c.mp4.part")
	oversized := "*.part\n#" + strings.Repeat("x", 70000)
	require.NoError(t, afero.WriteFile(afs, "/r/.vcrignore", []byte(oversized), 0644))

	fsmgr := vcrfs.NewFilesystemManager(afs, nil)
	root, err := fsmgr.Resolve("/r")
	require.NoError(t, err)

	plan, err := renamer.NewPlanner(fsmgr, defaultPipeline(), renamer.NewNopLogger()).Plan(root)
	assert.Error(t, err)
	assert.Nil(t, plan)
}

func TestPlan_IgnoreFileDirectoryPattern(t *testing.T) {
	afs := afero.NewMemMapFs()
	testutil.WriteTree(t, afs, "/r",
		"Course/1Extras/1a.mp4",
		"Course/1Extras/1b.mp4",
		"Course/1Intro/",
		"Course/1Setup/",
	)
	require.NoError(t, afero.WriteFile(afs, "/r/.vcrignore", []byte("/Course/1Extras/\n"), 0644))

	fsmgr := vcrfs.NewFilesystemManager(afs, nil)
	root, err := fsmgr.Resolve("/r")
	require.NoError(t, err)

	plan, err := renamer.NewPlanner(fsmgr, renamer.NewPipeline(renamer.RuleSet{StripPrefix: true}, ""), renamer.NewNopLogger()).Plan(root)
	require.NoError(t, err)

	want := []renamer.Operation{
		{From: "/r/Course/1Intro", To: "/r/Course/Intro", Rule: renamer.RuleStripPrefix, IsDir: true},
		{From: "/r/Course/1Setup", To: "/r/Course/Setup", Rule: renamer.RuleStripPrefix, IsDir: true},
	}
	assert.Equal(t, want, plan.Operations)
}
