// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth is the identity collaborator for the voting workflow: it turns
HTTP credentials into the opaque caller identities the election engine
compares. The engine itself never sees key material.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(adminIdentity, salt)
	err := auth.ValidateAdminKey(adminIdentity, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's
deterministic, the same identity and salt always produce the same key, so
validation needs no storage.

# Voter Keys

Voter keys work the same way, derived from the voter's identity:

	voterKey := auth.GenerateVoterKey("alice", salt)
	err := auth.ValidateVoterKey("alice", voterKey, salt)

The administrator hands the key to the voter at registration. A voter
request presents both the identity and the key; a valid pair proves the
caller owns that identity.

The "admin:" / "voter:" subject prefixes keep the two keyspaces disjoint:
an admin key never validates as a voter key for the same identity string.
*/
package auth
