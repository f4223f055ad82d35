package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetBuildCmd_Exists verifies getBuildCmd returns
// a valid command.
func TestGetBuildCmd_Exists(t *testing.T) {
	cmd := getBuildCmd()
	require.NotNil(t, cmd, "Build command should exist")
	assert.Equal(t, "build", cmd.Name(),
		"Command name should be build")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetBuildCmd_Descriptions verifies help content.
func TestGetBuildCmd_Descriptions(t *testing.T) {
	cmd := getBuildCmd()

	assert.Contains(t, cmd.Short, "SQLite",
		"Short description should mention SQLite")
	assert.Contains(t, cmd.Long, "schema",
		"Long description should mention schema")
	assert.Contains(t, cmd.Long, "FTS5",
		"Long description should mention FTS5")
	assert.Contains(t, cmd.Long, "rarity",
		"Long description should mention rarity")
}

// TestGetBuildCmd_Args verifies the optional output path.
func TestGetBuildCmd_Args(t *testing.T) {
	cmd := getBuildCmd()

	assert.NoError(t, cmd.Args(cmd, []string{}))
	assert.NoError(t, cmd.Args(cmd, []string{"out.db"}))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}),
		"Build should accept at most one argument")
}

// TestGetValidateCmd_Exists verifies getValidateCmd
// returns a valid command.
func TestGetValidateCmd_Exists(t *testing.T) {
	cmd := getValidateCmd()
	require.NotNil(t, cmd, "Validate command should exist")
	assert.Equal(t, "validate", cmd.Name(),
		"Command name should be validate")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
	assert.Contains(t, cmd.Long, "warnings",
		"Long description should explain warnings")
}

// TestGetMergeCmd_Args verifies merge requires output
// plus at least one input.
func TestGetMergeCmd_Args(t *testing.T) {
	cmd := getMergeCmd()
	require.NotNil(t, cmd, "Merge command should exist")
	assert.Equal(t, "merge", cmd.Name(),
		"Command name should be merge")

	assert.Error(t, cmd.Args(cmd, []string{"out.json"}),
		"Merge needs at least one input file")
	assert.NoError(t, cmd.Args(cmd, []string{"out.json", "in.json"}))
}

// TestGetFetchCmd_Subcommands verifies both fetch
// sources are registered.
func TestGetFetchCmd_Subcommands(t *testing.T) {
	cmd := getFetchCmd()
	require.NotNil(t, cmd, "Fetch command should exist")

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "worms",
		"Fetch should have a worms subcommand")
	assert.Contains(t, names, "inaturalist",
		"Fetch should have an inaturalist subcommand")
	assert.Contains(t, names, "wikimedia",
		"Fetch should have a wikimedia subcommand")
}

// TestGetUploadCmd_Exists verifies getUploadCmd returns
// a valid command.
func TestGetUploadCmd_Exists(t *testing.T) {
	cmd := getUploadCmd()
	require.NotNil(t, cmd, "Upload command should exist")
	assert.Equal(t, "upload", cmd.Name(),
		"Command name should be upload")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
	assert.Contains(t, cmd.Long, "R2_ACCOUNT_ID",
		"Long description should name the credential variables")
}

// TestInitEnvVars_PrefixedNames verifies UMISEED_*
// variables bind to config keys.
func TestInitEnvVars_PrefixedNames(t *testing.T) {
	v := viper.New()
	initEnvVars(v)

	t.Setenv("UMISEED_PATHS_DATA_DIR", "/tmp/seed")
	t.Setenv("UMISEED_BUILD_BATCH_SIZE", "250")
	t.Setenv("UMISEED_LOG_LEVEL", "debug")

	assert.Equal(t, "/tmp/seed", v.GetString("paths.data_dir"))
	assert.Equal(t, 250, v.GetInt("build.batch_size"))
	assert.Equal(t, "debug", v.GetString("log.level"))
}

// TestInitEnvVars_LegacyNames verifies the variable names
// of the older seed scripts still work.
func TestInitEnvVars_LegacyNames(t *testing.T) {
	v := viper.New()
	initEnvVars(v)

	t.Setenv("SEED_DATA_DIR", "/tmp/legacy")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("R2_ACCOUNT_ID", "acc123")
	t.Setenv("R2_BUCKET_NAME", "media-bucket")

	assert.Equal(t, "/tmp/legacy", v.GetString("paths.data_dir"))
	assert.Equal(t, "/tmp/out", v.GetString("paths.output_dir"))
	assert.Equal(t, "acc123", v.GetString("upload.account_id"))
	assert.Equal(t, "media-bucket", v.GetString("upload.bucket"))
}

// TestRootCmd_Structure verifies the subcommand set.
func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "umiseed", rootCmd.Name())

	var names []string
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{
		"build", "validate", "merge", "fetch", "upload",
	} {
		assert.Contains(t, names, want,
			"Root should register the %s command", want)
	}
}
