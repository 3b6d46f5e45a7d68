package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// SteamServer fakes the two Steam Web API endpoints and counts requests.
type SteamServer struct {
	*httptest.Server

	mu      sync.Mutex
	owned   map[string][]int64
	appList []byte
	order   []string

	ownedCalls   atomic.Int64
	appListCalls atomic.Int64
	healthCalls  atomic.Int64
}

// NewSteamServer starts a fake Steam API. owned maps steam IDs to app IDs;
// unknown IDs receive an empty games list. The health endpoint only accepts
// the "test" key that NewConfig installs.
func NewSteamServer(t testing.TB, owned map[string][]int64, apps map[int64]string) *SteamServer {
	t.Helper()

	s := &SteamServer{owned: owned, appList: AppListJSON(t, apps)}
	mux := http.NewServeMux()
	mux.HandleFunc("/IPlayerService/GetOwnedGames/v0001/", s.handleOwned)
	mux.HandleFunc("/ISteamApps/GetAppList/v2/", s.handleAppList)
	mux.HandleFunc("/ISteamWebAPIUtil/GetSupportedAPIList/v0001/", s.handleAPIList)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// SetAppList replaces the raw GetAppList body.
func (s *SteamServer) SetAppList(body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appList = body
}

// OwnedCalls returns the number of GetOwnedGames requests served.
func (s *SteamServer) OwnedCalls() int64 { return s.ownedCalls.Load() }

// AppListCalls returns the number of GetAppList requests served.
func (s *SteamServer) AppListCalls() int64 { return s.appListCalls.Load() }

// HealthCalls returns the number of GetSupportedAPIList requests served.
func (s *SteamServer) HealthCalls() int64 { return s.healthCalls.Load() }

// TotalCalls returns every request served.
func (s *SteamServer) TotalCalls() int64 {
	return s.OwnedCalls() + s.AppListCalls() + s.HealthCalls()
}

// RequestOrder returns the steam IDs in the order they were requested.
func (s *SteamServer) RequestOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

func (s *SteamServer) handleOwned(w http.ResponseWriter, r *http.Request) {
	s.ownedCalls.Add(1)
	q := r.URL.Query()
	if q.Get("key") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	steamID := q.Get("steamid")

	s.mu.Lock()
	s.order = append(s.order, steamID)
	ids := s.owned[steamID]
	s.mu.Unlock()

	type game struct {
		AppID int64 `json:"appid"`
	}
	var payload struct {
		Response struct {
			GameCount int    `json:"game_count"`
			Games     []game `json:"games"`
		} `json:"response"`
	}
	payload.Response.Games = make([]game, 0, len(ids))
	for _, id := range ids {
		payload.Response.Games = append(payload.Response.Games, game{AppID: id})
	}
	payload.Response.GameCount = len(ids)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *SteamServer) handleAppList(w http.ResponseWriter, _ *http.Request) {
	s.appListCalls.Add(1)
	s.mu.Lock()
	body := s.appList
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *SteamServer) handleAPIList(w http.ResponseWriter, r *http.Request) {
	s.healthCalls.Add(1)
	if r.URL.Query().Get("key") != "test" {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"apilist":{"interfaces":[]}}`))
}
