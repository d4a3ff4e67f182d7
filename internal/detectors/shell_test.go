package detectors

import (
	"strings"
	"testing"

	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/value"
)

func TestShell(t *testing.T) {
	want := obj(map[string]value.Value{ctxkeys.Langs: value.Strings("shell")})
	expectFragment(t, detect(t, Shell{}, tempRepo(t, map[string]string{"scripts/run": "#!/usr/bin/env bash\nset -e\n"})), want)
	expectFragment(t, detect(t, Shell{}, tempRepo(t, map[string]string{"build.sh": "#!/bin/sh\n"})), want)
}

func TestShell_IgnoresOtherShebangsAndBinaries(t *testing.T) {
	r := tempRepo(t, map[string]string{
		"tool.py":  "#!/usr/bin/env python3\n",
		"blob.bin": "\x00\x01\x02" + strings.Repeat("\xff", 1024),
		"empty":    "",
	})
	expectFragment(t, detect(t, Shell{}, r), value.EmptyObject())
}
