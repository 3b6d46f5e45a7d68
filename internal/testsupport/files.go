package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

type appListApp struct {
	AppID int64  `json:"appid"`
	Name  string `json:"name"`
}

type appListPayload struct {
	AppList struct {
		Apps []appListApp `json:"apps"`
	} `json:"applist"`
}

// AppListJSON renders a GetAppList/v2 payload for the given id-to-title map.
// Apps are emitted in ascending id order so payloads are byte-stable.
func AppListJSON(t testing.TB, apps map[int64]string) []byte {
	t.Helper()

	ids := make([]int64, 0, len(apps))
	for id := range apps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var payload appListPayload
	payload.AppList.Apps = make([]appListApp, 0, len(ids))
	for _, id := range ids {
		payload.AppList.Apps = append(payload.AppList.Apps, appListApp{AppID: id, Name: apps[id]})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal app list: %v", err)
	}
	return data
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteAppList writes a GetAppList payload for apps to path.
func WriteAppList(t testing.TB, path string, apps map[int64]string) {
	t.Helper()
	WriteFile(t, path, AppListJSON(t, apps))
}
