package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fotopista/admin-api/internal/adapters/supabase/supatest"
)

// Tiny dev-only identity provider.
//
// This is NOT a real GoTrue deployment. It serves the subset of the admin
// auth API the service talks to, so local workflows can run against real
// HTTP instead of in-process fakes.
//
// Seed accounts with SEED_USERS, e.g.
//
//	SEED_USERS="admin-tok:admin@example.com" go run ./cmd/devidp
//
// Each entry is token:email; the minted account id is logged at startup.
func main() {
	port := getenv("PORT", "9999")
	serviceKey := getenv("SERVICE_ROLE_KEY", "dev-service-role-key")
	baseURL := getenv("BASE_URL", "http://localhost:"+port)

	fake := supatest.New(serviceKey)
	fake.SetBaseURL(baseURL)

	for _, entry := range strings.Split(os.Getenv("SEED_USERS"), ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		token, email, ok := strings.Cut(entry, ":")
		if !ok {
			log.Fatalf("SEED_USERS entry %q must be token:email", entry)
		}
		id := fake.AddUser(email, nil)
		fake.AddToken(token, id)
		log.Printf("seeded %s id=%s token=%s", email, id, token)
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           fake.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("devidp listening on :%s (service key %q)", port, serviceKey)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
