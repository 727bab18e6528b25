// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package filesystem

import (
	"bytes"
	"io/ioutil"

	"github.com/pierrec/lz4"
	"github.com/pkg/errors"
)

// snapshots are stored on disk as a single lz4 frame
func compressSnapshot(raw []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := lz4.NewWriter(buf)
	if _, err := w.Write(raw); err != nil {
		return nil, errors.Wrap(err, "failed to compress state snapshot")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finish compressed state snapshot")
	}
	return buf.Bytes(), nil
}

func decompressSnapshot(compressed []byte) ([]byte, error) {
	raw, err := ioutil.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress state snapshot")
	}
	return raw, nil
}
