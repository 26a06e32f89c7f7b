package chunker

import (
	"crypto/md5"
	"crypto/sha1"
	"fmt"

	sha256 "github.com/minio/sha256-simd"

	"github.com/zhengshuai-xiao/ChunkerS/config"
	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

// HashAlgo identifies a chunk digest algorithm.
type HashAlgo int

const (
	MD5 HashAlgo = iota
	SHA1
	SHA256
)

// Size returns the digest width in bytes.
func (a HashAlgo) Size() int {
	switch a {
	case MD5:
		return md5.Size
	case SHA1:
		return sha1.Size
	case SHA256:
		return sha256.Size
	}
	return 0
}

func (a HashAlgo) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA1:
		return "sha1"
	case SHA256:
		return "sha256"
	}
	return "unknown"
}

// Sum digests data in one shot. Chunks are hashed only once their bytes are
// finalized, so no streaming state is kept.
func (a HashAlgo) Sum(data []byte) []byte {
	switch a {
	case MD5:
		digest := md5.Sum(data)
		return digest[:]
	case SHA1:
		digest := sha1.Sum(data)
		return digest[:]
	case SHA256:
		digest := sha256.Sum256(data)
		return digest[:]
	}
	return nil
}

// HashAlgoFromConfig maps the configured hashing technique onto a HashAlgo.
func HashAlgoFromConfig(cfg *config.Config) (HashAlgo, error) {
	tech, err := cfg.HashingAlgo()
	if err != nil {
		return 0, err
	}
	switch tech {
	case config.HashingMD5:
		return MD5, nil
	case config.HashingSHA1:
		return SHA1, nil
	case config.HashingSHA256:
		return SHA256, nil
	}
	return 0, fmt.Errorf("%w: unhandled hashing technique %d", internal.ErrConfigInvalid, tech)
}
