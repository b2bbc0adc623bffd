package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/chunkctl/internal/logging"
	"github.com/danmuck/chunkctl/internal/protocol/chunkpolicy"
	"github.com/danmuck/chunkctl/internal/protocol/chunktype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, append([]string{"--log-level", "off"}, args...)...)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func keepGlobalLevel(t *testing.T) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunkctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing config")
	return path
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", "RuSt", "Rust")
	require.NoError(t, err)
	assert.Equal(t,
		"RuSt critical=true public=false reserved_bit_valid=true safe_to_copy=true valid=true\n"+
			"Rust critical=true public=false reserved_bit_valid=false safe_to_copy=true valid=false\n",
		out)
}

func TestInspectErrorIsVerbatim(t *testing.T) {
	_, err := run(t, "inspect", "RuSt", "Ru1t")
	require.Error(t, err)
	assert.ErrorIs(t, err, chunktype.ErrInvalidByte)
	assert.Equal(t, "chunktype: invalid byte 49 at index 2; valid bytes are ASCII A-Z and a-z (65-90, 97-122)", err.Error())
}

func TestInspectCompatTruncatesAndStrictRejects(t *testing.T) {
	out, err := run(t, "inspect", "RuStacean")
	require.NoError(t, err)
	assert.Contains(t, out, "RuSt critical=true")

	_, err = run(t, "--strict", "inspect", "RuStacean")
	assert.ErrorIs(t, err, chunktype.ErrMalformedInput)
}

func TestInspectJSON(t *testing.T) {
	out, err := run(t, "--json", "inspect", "tEXt")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "tEXt", got[0]["tag"])
	assert.Equal(t, false, got[0]["critical"])
	assert.Equal(t, true, got[0]["public"])
	assert.Equal(t, true, got[0]["safe_to_copy"])
	assert.Equal(t, true, got[0]["valid"])
}

func TestBytes(t *testing.T) {
	out, err := run(t, "bytes", "82", "117", "0x53", "116")
	require.NoError(t, err)
	assert.Equal(t, "RuSt critical=true public=false reserved_bit_valid=true safe_to_copy=true valid=true\n", out)

	_, err = run(t, "bytes", "82", "49", "83", "116")
	var ibe chunktype.InvalidByteError
	require.ErrorAs(t, err, &ibe)
	assert.Equal(t, byte(49), ibe.Value)

	_, err = run(t, "bytes", "82", "300", "83", "116")
	assert.Error(t, err)

	_, err = run(t, "bytes", "82", "117")
	assert.Error(t, err)
}

func TestDecide(t *testing.T) {
	out, err := run(t, "decide", "IHDR", "prVT")
	require.NoError(t, err)
	assert.Equal(t, "IHDR decode=process copy=copy\nprVT decode=skip copy=copy\n", out)

	out, err = run(t, "decide", "--critical-modified", "prVT")
	require.NoError(t, err)
	assert.Equal(t, "prVT decode=skip copy=drop\n", out)
}

func TestDecideUnknownCriticalAborts(t *testing.T) {
	out, err := run(t, "decide", "RuSt", "IDAT")
	var de chunkpolicy.DecisionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, chunkpolicy.ReasonUnknownCritical, de.Reason)
	assert.Equal(t, "RuSt decode=abort (unknown critical chunk) copy=copy\nIDAT decode=process copy=copy\n", out)
}

func TestDecideUsesConfig(t *testing.T) {
	path := writeConfig(t, `
known = ["RuSt"]
strict_reserved = true
output = "json"
`)
	out, err := run(t, "--config", path, "decide", "RuSt", "ruse")
	var de chunkpolicy.DecisionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, chunkpolicy.ReasonReservedBit, de.Reason)

	var got []decision
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "process", got[0].Decode)
	assert.Equal(t, "abort", got[1].Decode)
	assert.Equal(t, chunktype.MustParse("ruse"), got[1].Tag)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunkctl.toml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config template")

	_, err = run(t, "config", "init", path)
	assert.Error(t, err, "init must not overwrite without --force")

	_, err = run(t, "config", "init", "--force", path)
	require.NoError(t, err)

	out, err = run(t, "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "parse_mode=compat known=1")
}

func TestConfigValidateRejectsBadOutput(t *testing.T) {
	path := writeConfig(t, "output = \"yaml\"\n")
	_, err := run(t, "config", "validate", path)
	assert.Error(t, err)
}

func TestConfigFlagWithBrokenFileFails(t *testing.T) {
	path := writeConfig(t, "known = [\"R2D2\"]\n")
	_, err := run(t, "--config", path, "inspect", "IHDR")
	assert.True(t, errors.Is(err, chunktype.ErrInvalidByte), "got %v", err)
}

func TestLoadSettingsOverrides(t *testing.T) {
	path := writeConfig(t, "log_level = \"debug\"\noutput = \" JSON \"\n")
	s, err := loadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, settings{LogLevel: "debug", Output: outputJSON}, s)
	assert.Empty(t, defaultSettings().LogLevel)

	s, err = loadSettings(writeConfig(t, "parse_mode = \"strict\"\n"))
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), s)
}

func TestEnvLogLevelIsNotOverriddenByDefaults(t *testing.T) {
	keepGlobalLevel(t)
	t.Setenv(logging.EnvLogLevel, "error")

	_, err := execute(t, "inspect", "RuSt")
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestEnvLogLevelBeatsConfigFile(t *testing.T) {
	keepGlobalLevel(t)
	t.Setenv(logging.EnvLogLevel, "error")
	path := writeConfig(t, "log_level = \"debug\"\n")

	_, err := execute(t, "--config", path, "inspect", "RuSt")
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestConfigFileLogLevelAppliesWithoutEnv(t *testing.T) {
	keepGlobalLevel(t)
	t.Setenv(logging.EnvLogLevel, "")
	path := writeConfig(t, "log_level = \"warn\"\n")

	_, err := execute(t, "--config", path, "inspect", "RuSt")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestLogLevelFlagBeatsEnv(t *testing.T) {
	keepGlobalLevel(t)
	t.Setenv(logging.EnvLogLevel, "error")

	_, err := execute(t, "--log-level", "debug", "inspect", "RuSt")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
