// Package warehouse models pick-pack tasks of the internal warehouse channel.
package warehouse
