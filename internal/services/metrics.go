//nolint:gochecknoglobals
package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	invitationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "usermanagement",
		Subsystem: "invitations",
		Name:      "created_total",
		Help:      "The total number of fully provisioned invitations",
	})

	invitationRedemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "usermanagement",
		Subsystem: "invitations",
		Name:      "redemptions_total",
		Help:      "Redemption attempts by outcome",
	}, []string{"result"})

	provisioningFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "usermanagement",
		Subsystem: "invitations",
		Name:      "provisioning_failures_total",
		Help:      "Create pipelines that failed after the row was written",
	}, []string{"step", "compensated"})

	codeCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "usermanagement",
		Subsystem: "invitations",
		Name:      "code_collisions_total",
		Help:      "Invite code collisions resolved by regeneration",
	})
)
