// Package webhooks receives and dispatches PagerDuty Webhooks v3 deliveries.
//
// A Resource is an http.Handler that authenticates each inbound request with
// HMAC-SHA256 over the raw body (constant-time comparison, multiple secrets
// supported for rotation), decodes the polymorphic event envelope, and
// broadcasts the typed payload to the handlers registered for its resource
// type:
//
//	resource, err := webhooks.NewResource(os.Getenv("PAGERDUTY_WEBHOOK_SECRET"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	resource.OnIncident(func(incident *webhooks.Incident) {
//		slog.Info("incident", "number", incident.Number, "title", incident.Title)
//	})
//	http.Handle("/webhook", resource)
//
// The HTTP contract is the one PagerDuty expects: 204 when the delivery is
// accepted (including silently dropped unrecognized resource types), 403 on a
// bad signature, 405 on a non-POST method, and 415 on a non-JSON content
// type. Payload decoding problems after the 204 is committed are logged, not
// surfaced to the sender.
package webhooks
