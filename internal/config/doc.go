// Package config loads, normalizes, and validates asslrc configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the ASSLRC_LOG_LEVEL environment
// override. The Config type centralizes every knob the CLI needs: conversion
// behaviour, log output, and the history database location.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
