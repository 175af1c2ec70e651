package router_test

import (
	"os"
	"testing"

	"github.com/oksasatya/go-profile-service/pkg/helpers"
)

func TestMain(m *testing.M) {
	helpers.PasswordCost = 4 // bcrypt.MinCost
	os.Exit(m.Run())
}
