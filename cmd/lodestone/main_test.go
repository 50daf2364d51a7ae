package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/lodestone/cmd/lodestone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "lodestone")
	assert.Contains(t, stdout.String(), "extract")
	assert.Contains(t, stdout.String(), "validate")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_Extract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	defsDir := filepath.Join(dir, "definitions")
	require.NoError(t, os.Mkdir(defsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(defsDir, "character.yaml"), []byte(`
NAME:
  selector: .frame__chara__name
LINK:
  selector: .frame__chara__link
`), 0644))

	page := filepath.Join(dir, "character.html")
	require.NoError(t, os.WriteFile(page, []byte(profileHTML), 0644))

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--definitions", defsDir,
		"extract", "character", page,
		"--base-url", "https://eu.finalfantasyxiv.com",
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), page+` NAME found=true text="Alisaie & Alphinaud"`)
	assert.Contains(t, stdout.String(), "href=https://eu.finalfantasyxiv.com/lodestone/character/123/")
	assert.Contains(t, stderr.String(), "definitions load")
	assert.Contains(t, stderr.String(), "name=character")
}

func TestMain_Run_Validate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "character.json"), []byte(`{"NAME": {"selector": ".name"}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"LEVEL": {"selector": ".level", "regex": "("}}`), 0644))

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"-d", dir, "validate"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "character: ok (1 fields)")
	assert.Contains(t, stdout.String(), "broken.json: field LEVEL")
}

func TestMain_Run_ValidateRejectsInvalidSelector(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "character.json"), []byte(`{"TITLE": {"selector": ".q["}}`), 0644))

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"-d", dir, "validate", "character"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "field TITLE")
	assert.Contains(t, stdout.String(), "(invalid)")
}
