package photographerrepo

import (
	"testing"

	"github.com/fotopista/admin-api/internal/adapters/contracttest"
	photographerrepoport "github.com/fotopista/admin-api/internal/ports/out/photographerrepo"
)

func TestContract_PhotographerRepo(t *testing.T) {
	contracttest.RunPhotographerRepo(t, func(t *testing.T) (photographerrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
