package influx

import (
	"bufio"
	"compress/gzip"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/pkg/core"
)

func testTimeline() *core.Timeline {
	return &core.Timeline{
		Scene: "Juggling",
		Speed: core.SpeedNormal,
		FPS:   2,
		Frames: []core.Frame{
			{Number: 0, Time: 0, Elements: []core.AnimatedElement{
				{Index: 0, Kind: core.Player(core.RolePrimary), Position: core.Center, DrawOrder: 4},
				{Index: 1, Kind: core.Ball(), Position: core.Pos(0.5, 0.53), DrawOrder: 5},
			}},
			{Number: 1, Time: 0.5, Elements: []core.AnimatedElement{
				{Index: 0, Kind: core.Player(core.RolePrimary), Position: core.Center, DrawOrder: 4},
				{Index: 1, Kind: core.Ball(), Position: core.Pos(0.5, 0.45), DrawOrder: 5},
			}},
		},
	}
}

func configFor(t *testing.T, srv *httptest.Server) config.InfluxConfig {
	t.Helper()
	port := srv.Listener.Addr().(*net.TCPAddr).Port
	return config.InfluxConfig{
		Protocol:  "http",
		Host:      "127.0.0.1",
		Port:      strconv.Itoa(port),
		Token:     "token",
		Org:       "drillboard",
		Bucket:    "poses",
		BackupDir: t.TempDir(),
	}
}

func TestPosePoint(t *testing.T) {
	tl := testTimeline()
	ts := time.Unix(100, 0)

	line := influxdb2_write.PointToLineProtocol(PosePoint(tl, tl.Frames[1], tl.Frames[1].Elements[0], geo.DefaultPitch, ts), time.Second)
	assert.True(t, strings.HasPrefix(line, PoseMeasurement+","))
	assert.Contains(t, line, "role=primary")
	assert.Contains(t, line, "scene=Juggling")
	assert.Contains(t, line, "speed=normal")
	assert.Contains(t, line, "frame=1i")
	assert.Contains(t, line, "x=0.5")
	assert.Contains(t, line, "meters_y=52.5")

	ball := influxdb2_write.PointToLineProtocol(PosePoint(tl, tl.Frames[0], tl.Frames[0].Elements[1], geo.DefaultPitch, ts), time.Second)
	assert.NotContains(t, ball, "role=")
	assert.Contains(t, ball, "type=ball")
}

func TestScenePoint(t *testing.T) {
	moving := core.Moving(core.Player(core.RoleDefender), core.NewPath(2, core.Pos(0, 0.5), core.Pos(1, 0.5)))
	line := influxdb2_write.PointToLineProtocol(ScenePoint("Give and Go", 3, moving, geo.DefaultPitch, time.Unix(0, 0)), time.Second)

	assert.True(t, strings.HasPrefix(line, SceneMeasurement+","))
	assert.Contains(t, line, `scene=Give\ and\ Go`)
	assert.Contains(t, line, "element=3")
	assert.Contains(t, line, "moving=true")
	assert.Contains(t, line, "path_meters=")

	goal := core.Element(core.Goal(core.GoalFull), core.Pos(0.5, 0.04))
	line = influxdb2_write.PointToLineProtocol(ScenePoint("Shooting", 0, goal, geo.DefaultPitch, time.Unix(0, 0)), time.Second)
	assert.Contains(t, line, "goal_size=full")
	assert.NotContains(t, line, "path_meters")
}

func TestInit_UnreachableUsesBackup(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := configFor(t, srv)
	srv.Close()

	b := New(cfg, geo.DefaultPitch, zerolog.Nop())
	require.NoError(t, b.Init())
	assert.False(t, b.Valid())
	require.Len(t, b.ExportedFiles(), 1)

	require.NoError(t, b.RecordTimeline(testTimeline()))
	require.NoError(t, b.Close())

	f, err := os.Open(b.ExportedFiles()[0])
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var lines []string
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, PoseMeasurement+","), line)
	}
}

func TestRecordTimeline_Nil(t *testing.T) {
	b := New(config.InfluxConfig{}, geo.DefaultPitch, zerolog.Nop())
	assert.Error(t, b.RecordTimeline(nil))
	assert.Error(t, b.PublishScene("x", nil))
	assert.Error(t, b.writePoint(influxdb2_write.NewPointWithMeasurement("m")))
}

// fakeInflux answers just enough of the v2 API for the client.
type fakeInflux struct {
	mu     sync.Mutex
	writes []string
}

func (f *fakeInflux) body() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.writes, "")
}

func (f *fakeInflux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/ping":
		w.WriteHeader(http.StatusNoContent)
	case strings.HasPrefix(r.URL.Path, "/api/v2/orgs"):
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"orgs":[{"id":"0000000000000001","name":"drillboard"}]}`)
	case strings.HasPrefix(r.URL.Path, "/api/v2/buckets"):
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"buckets":[{"id":"0000000000000002","orgID":"0000000000000001","name":"poses","retentionRules":[]}]}`)
	case r.URL.Path == "/api/v2/write":
		data, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.writes = append(f.writes, string(data))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestRecordTimeline_WritesToServer(t *testing.T) {
	fake := &fakeInflux{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	b := New(configFor(t, srv), geo.DefaultPitch, zerolog.Nop())
	require.NoError(t, b.Init())
	assert.True(t, b.Valid())
	assert.Empty(t, b.ExportedFiles())

	require.NoError(t, b.PublishScene("Juggling", &core.TacticalScene{
		Elements: []core.FieldElement{core.Element(core.Player(core.RolePrimary), core.Center)},
	}))
	require.NoError(t, b.RecordTimeline(testTimeline()))
	require.NoError(t, b.Flush())

	assert.Eventually(t, func() bool {
		body := fake.body()
		return strings.Count(body, PoseMeasurement+",") == 4 && strings.Contains(body, SceneMeasurement+",")
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, b.Close())
}
