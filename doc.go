// Package firebaseadmincheck provides fbadmin, a diagnostic CLI for the
// Firebase Admin SDK.
//
// fbadmin initializes the Admin SDK from a service account credential file
// and lists registered Firebase Authentication users, reporting credential
// and service failures by category.
//
// # Installation
//
//	go install github.com/blackwell-systems/firebase-admin-check/cmd/fbadmin@latest
//
// # Quick Start
//
//	fbadmin credentials check --credentials ./service-account-key.json
//	fbadmin users list --credentials ./service-account-key.json
//	fbadmin users list -o table --export users.yaml
//	fbadmin users show users.yaml
//
// # Local Emulator
//
// Point fbadmin at a running Auth emulator with --emulator-host or
// FBADMIN_EMULATOR_HOST:
//
//	fbadmin status --emulator-host localhost:9099
//	fbadmin users list --emulator-host localhost:9099
//
// # Configuration
//
// Sources are resolved as flags > FBADMIN_* environment > config.yaml
// ($HOME/.fbadmin or the working directory) > defaults. Run
// `fbadmin config get` to see the effective values.
//
// # License
//
// Apache 2.0 - See LICENSE file for details.
package firebaseadmincheck
