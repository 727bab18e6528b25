// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package hash

import (
	"golang.org/x/crypto/ripemd160"
)

const (
	RIPEMD160_HASH_SIZE_BYTES = 20
)

// CalcRipemd160Sha256 is ripemd160(sha256(data)), the 20 byte digest used for state keys
func CalcRipemd160Sha256(data []byte) []byte {
	r := ripemd160.New()
	r.Write(CalcSha256(data))
	return r.Sum(nil)
}
