// Package main hosts the asslrc CLI entrypoint and command graph.
//
// The Cobra-based command tree reads ASS subtitle files, hands their text to
// the conversion core, and writes LRC output, history rows, and terminal
// summaries. It centralizes configuration resolution, run identifiers, and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: conversion semantics live in internal/convert and
// internal/karaoke; commands here only move bytes and present results.
package main
