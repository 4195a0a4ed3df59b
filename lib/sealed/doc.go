// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts inventory snapshots with age so an inventory
// can sit on shared storage without exposing holders and locations.
//
// A snapshot is sealed when its file name ends in ".age". [Seal]
// encrypts to one or more x25519 recipients (age1... public keys);
// [Open] decrypts with the identities loaded from an age identity file
// by [LoadIdentities]. [GenerateIdentity] backs `toolshed keygen` and
// produces keys in the same text form age-keygen does, so either tool
// can manage them.
package sealed
