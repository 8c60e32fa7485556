package services

import "time"

const (
	KeyIdentity = "ens:identity:%s"

	TTLIdentity = 24 * time.Hour
)
