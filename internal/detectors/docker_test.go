package detectors

import (
	"testing"

	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/value"
)

func TestDocker_None(t *testing.T) {
	expectFragment(t, detect(t, Docker{}, tempRepo(t, map[string]string{"main.go": ""})), value.EmptyObject())
}

func TestDocker_OrdersDockerfileFirst(t *testing.T) {
	r := tempRepo(t, map[string]string{
		"web.dockerfile":   "FROM nginx",
		"Dockerfile":       "FROM scratch",
		"api.Dockerfile":   "FROM golang",
		"sub/x.dockerfile": "FROM alpine",
	})
	expectFragment(t, detect(t, Docker{}, r), obj(map[string]value.Value{
		ctxkeys.Langs:       value.Strings("docker"),
		ctxkeys.Dockerfiles: value.Strings("Dockerfile", "api.Dockerfile", "web.dockerfile"),
	}))
}
