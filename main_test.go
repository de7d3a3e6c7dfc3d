package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcnksm/go-latest"

	"vlanpath/internal/config"
	"vlanpath/internal/model"
)

const (
	testEndpoint   = "vlan-100, vpc 101-102-VPC-5-6-PG\n"
	testAttachment = "dn: uni/tn-X/ap-Y/epg-VLAN100_APP/rspathAtt-[topology/pod-1/protpaths-101-102/pathep-[101-102-VPC-5-6-PG]]\n"
)

// isolateConfig hides any config file from the environment, the working
// directory or the home directory.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	homedir.Reset()
	t.Cleanup(homedir.Reset)
}

func writeInputs(t *testing.T, endpoint, attachments string) (string, string) {
	t.Helper()
	isolateConfig(t)
	dir := t.TempDir()
	ep := filepath.Join(dir, "endpoint.txt")
	atts := filepath.Join(dir, "attachments.txt")
	require.NoError(t, os.WriteFile(ep, []byte(endpoint), 0644))
	require.NoError(t, os.WriteFile(atts, []byte(attachments), 0644))
	return ep, atts
}

func TestRun_CSV(t *testing.T) {
	ep, atts := writeInputs(t, testEndpoint, "")

	var out bytes.Buffer
	code := run([]string{"-e", ep, "-a", atts, "--epg", "VLAN100_APP"}, strings.NewReader(""), &out)

	require.Equal(t, 0, code)
	assert.Equal(t, "VLAN,EPG,PATH\n100,VLAN100_APP,pod-2/protpaths-101-102/pathep-[101-102-VPC-5-6-PG]\n", out.String())
}

func TestRun_CSVAllAllowed(t *testing.T) {
	ep, atts := writeInputs(t, testEndpoint, testAttachment)

	var out bytes.Buffer
	code := run([]string{"-e", ep, "-a", atts, "--csv"}, strings.NewReader(""), &out)

	require.Equal(t, 0, code)
	assert.Equal(t, "VLAN,EPG,PATH\n", out.String())
}

func TestRun_StdinAndFallbackPod(t *testing.T) {
	_, atts := writeInputs(t, "", "")

	var out bytes.Buffer
	code := run([]string{"-e", "-", "-a", atts, "--fallback-pod", "pod-9"}, strings.NewReader(testEndpoint), &out)

	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "100,VLAN100,pod-9/protpaths-101-102/pathep-[101-102-VPC-5-6-PG]")
}

func TestRun_JSON(t *testing.T) {
	ep, atts := writeInputs(t, testEndpoint, testAttachment)

	var out bytes.Buffer
	code := run([]string{"-e", ep, "-a", atts, "--json"}, strings.NewReader(""), &out)
	require.Equal(t, 0, code)

	var res model.AnalysisResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Results, 1)
	assert.Equal(t, model.StatusAllowed, res.Results[0].Status)
	assert.Equal(t, "VLAN100_APP", res.EPG)
}

func TestRun_ReportToFile(t *testing.T) {
	ep, atts := writeInputs(t, testEndpoint, "")
	outPath := filepath.Join(t.TempDir(), "report.txt")

	var out bytes.Buffer
	code := run([]string{"-e", ep, "-a", atts, "-r", "-o", outPath}, strings.NewReader(""), &out)
	require.Equal(t, 0, code)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "VLAN PATH VALIDATION REPORT")
}

func TestRun_ConfigFile(t *testing.T) {
	ep, atts := writeInputs(t, testEndpoint, "")
	cfgPath := filepath.Join(t.TempDir(), "vlanpath.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("fallback_pod: pod-4\nepg: FROM_CONFIG\n"), 0644))

	var out bytes.Buffer
	code := run([]string{"-e", ep, "-a", atts, "-c", cfgPath}, strings.NewReader(""), &out)

	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "100,FROM_CONFIG,pod-4/protpaths-101-102/")
}

func TestRun_Failures(t *testing.T) {
	ep, atts := writeInputs(t, "no vlan here\n", testAttachment)
	var out bytes.Buffer

	assert.Equal(t, exitFailure, run([]string{"-e", ep, "-a", atts}, strings.NewReader(""), &out))
	assert.Equal(t, exitUsage, run([]string{"-e", ep}, strings.NewReader(""), &out))
	assert.Equal(t, exitUsage, run([]string{"--no-such-flag"}, strings.NewReader(""), &out))
	assert.Equal(t, exitUsage, run([]string{"-e", ep, "-a", atts, "--log-level", "loud"}, strings.NewReader(""), &out))
	assert.Equal(t, exitFailure, run([]string{"-e", "-", "-a", "-"}, strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}

func TestRun_Version(t *testing.T) {
	isolateConfig(t)
	var out bytes.Buffer
	require.Equal(t, 0, run([]string{"--version"}, strings.NewReader(""), &out))
	assert.Equal(t, "vlanpath version "+model.Version+"\n", out.String())
}

func TestRun_IgnoresAmbientConfig(t *testing.T) {
	ep, atts := writeInputs(t, testEndpoint, "")
	require.NoError(t, os.WriteFile("vlanpath.yaml", []byte("epg: MY_EPG\n"), 0644))

	var out bytes.Buffer
	code := run([]string{"-e", ep, "-a", atts}, strings.NewReader(""), &out)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "100,MY_EPG,pod-2/")

	isolateConfig(t)
	out.Reset()
	code = run([]string{"-e", ep, "-a", atts}, strings.NewReader(""), &out)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "100,VLAN100,pod-2/")
}

func TestRun_WebBannerUsesStdout(t *testing.T) {
	isolateConfig(t)

	var out bytes.Buffer
	code := run([]string{"--web", "--addr", "127.0.0.1:-1"}, strings.NewReader(""), &out)

	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "Go to http://127.0.0.1:-1 in your browser.\n", out.String())
}

func TestPrintUpdate(t *testing.T) {
	cfg := &config.Config{}
	cfg.Update.Owner = "netops-tools"
	cfg.Update.Repository = "vlanpath"

	var out bytes.Buffer
	printUpdate(&out, cfg, &latest.CheckResponse{Current: "9.9.9", Outdated: true}, "0.1.0", false)
	assert.Contains(t, out.String(), "A new version is available: 9.9.9 (you have 0.1.0)")
	assert.Contains(t, out.String(), "https://github.com/netops-tools/vlanpath/releases")

	out.Reset()
	printUpdate(&out, cfg, &latest.CheckResponse{Current: "0.1.0", Latest: true}, "0.1.0", false)
	assert.Empty(t, out.String())

	printUpdate(&out, cfg, &latest.CheckResponse{Current: "0.1.0", Latest: true}, "0.1.0", true)
	assert.Contains(t, out.String(), "You are using the latest version: 0.1.0")
}
