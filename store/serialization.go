// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MarshalRunInfo serializes an index record to MUS bytes. Field order is
// part of the stored format and must not change.
func MarshalRunInfo(info RunInfo) []byte {
	size := ord.String.Size(info.Id) +
		ord.String.Size(info.SeedPhrase) +
		varint.Int.Size(info.NodeCount) +
		varint.Int.Size(info.EdgeCount) +
		varint.Int.Size(info.ClusterCount) +
		varint.Int64.Size(info.CreatedAt.UnixMicro())

	buf := make([]byte, size)
	n := ord.String.Marshal(info.Id, buf)
	n += ord.String.Marshal(info.SeedPhrase, buf[n:])
	n += varint.Int.Marshal(info.NodeCount, buf[n:])
	n += varint.Int.Marshal(info.EdgeCount, buf[n:])
	n += varint.Int.Marshal(info.ClusterCount, buf[n:])
	varint.Int64.Marshal(info.CreatedAt.UnixMicro(), buf[n:])
	return buf
}

// UnmarshalRunInfo deserializes an index record from MUS bytes.
func UnmarshalRunInfo(data []byte) (RunInfo, error) {
	var info RunInfo
	var n, total int
	var err error

	if info.Id, n, err = ord.String.Unmarshal(data); err != nil {
		return RunInfo{}, corrupt("id", err)
	}
	total += n
	if info.SeedPhrase, n, err = ord.String.Unmarshal(data[total:]); err != nil {
		return RunInfo{}, corrupt("seed phrase", err)
	}
	total += n
	if info.NodeCount, n, err = varint.Int.Unmarshal(data[total:]); err != nil {
		return RunInfo{}, corrupt("node count", err)
	}
	total += n
	if info.EdgeCount, n, err = varint.Int.Unmarshal(data[total:]); err != nil {
		return RunInfo{}, corrupt("edge count", err)
	}
	total += n
	if info.ClusterCount, n, err = varint.Int.Unmarshal(data[total:]); err != nil {
		return RunInfo{}, corrupt("cluster count", err)
	}
	total += n

	createdAt, _, err := varint.Int64.Unmarshal(data[total:])
	if err != nil {
		return RunInfo{}, corrupt("created at", err)
	}
	info.CreatedAt = time.UnixMicro(createdAt).UTC()

	return info, nil
}

func corrupt(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCorruptRecord, field, err)
}
