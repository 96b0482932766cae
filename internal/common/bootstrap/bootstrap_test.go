package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlibekovAA/profile-cards/internal/common/config"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
	"github.com/AlibekovAA/profile-cards/internal/profile/fetch"
)

func TestNewProfilesAppWith_WiresControllerAndRenderer(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Leanne Graham","address":{"street":"Kulas Light","suite":"Apt. 556","city":"Gwenborough","zipcode":"92998-3874"}}]`))
	}))
	defer upstream.Close()

	log, _ := logger.New("", "test", "info")
	cfg := config.ProfilesConfig{
		UsersEndpoint:    upstream.URL,
		AvatarBaseURL:    "https://avatars.example.com",
		AvatarStyle:      "bottts",
		MaxResponseBytes: 1 << 20,
	}
	app := NewProfilesAppWith(log, cfg, upstream.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loaded, ok := app.Controller.Run(ctx).(fetch.Loaded)
	if !ok {
		t.Fatalf("expected loaded state, got %#v", app.Controller.State())
	}

	card := app.Renderer.Render(loaded.Users[0])
	if card.Avatar.URL != "https://avatars.example.com/bottts/svg?seed=Leanne+Graham" {
		t.Errorf("renderer not configured from config: %s", card.Avatar.URL)
	}
	if card.Address != "Kulas Light, Apt. 556, Gwenborough, 92998-3874" {
		t.Errorf("unexpected address %q", card.Address)
	}
}
