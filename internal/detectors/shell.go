package detectors

import (
	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

var shellShebangs = [][]byte{
	[]byte("#!/usr/local/bin/bash"),
	[]byte("#!/usr/local/bin/fish"),
	[]byte("#!/usr/local/bin/tcsh"),
	[]byte("#!/usr/local/bin/ash"),
	[]byte("#!/usr/local/bin/zsh"),
	[]byte("#!/usr/bin/env bash"),
	[]byte("#!/usr/bin/env fish"),
	[]byte("#!/usr/bin/env zsh"),
	[]byte("#!/usr/local/bash"),
	[]byte("#!/usr/local/tcsh"),
	[]byte("#!/usr/bin/bash"),
	[]byte("#!/usr/bin/fish"),
	[]byte("#!/usr/bin/tcsh"),
	[]byte("#!/usr/bin/zsh"),
	[]byte("#!/bin/bash"),
	[]byte("#!/bin/tcsh"),
	[]byte("#!/bin/ash"),
	[]byte("#!/bin/csh"),
	[]byte("#!/bin/ksh"),
	[]byte("#!/bin/zsh"),
	[]byte("#!/bin/sh"),
}

// Shell detects shell scripts by their shebang line.
type Shell struct{}

func (Shell) Meta() capability.Meta {
	return capability.Meta{Name: "shell", Description: "Detects if the project contains shell scripts.", DefaultEnabled: true}
}

func (Shell) Detect(r repo.Repo) (value.Value, error) {
	return detectByHeader(r, shellShebangs, "shell")
}
