// Package applemusic is a typed client for the Apple Music REST API.
//
// # Authentication
//
// An [Authenticator] holds the developer token, the optional music user token and
// the storefront. It turns URLs into [RequestDescriptor] values carrying the
// Authorization header and, for library (me/...) endpoints, the Music-User-Token
// header. Missing credentials are reported as a [ConfigError] before anything is
// sent.
//
// # Dispatching
//
// A [Dispatcher] sends descriptors. A 429 Too Many Requests response is retried
// after the delay given by Retry-After (seconds or an HTTP date), or
// [DefaultRetryFallback] when there is none. Retries continue until the API stops
// throttling unless [RetryPolicy.MaxRetries] caps them; the context's deadline or
// cancellation always ends the wait.
//
// Every other failure is a [RequestError]:
//   - [KindTransport] : no response was received
//   - [KindHTTP] : a status outside 2xx
//   - [KindDecode] : a 2xx body that did not decode; Body holds the raw payload
//
// # Pagination
//
// Collection endpoints answer with an [Envelope]. [FetchAll] follows each page's
// next reference, resolved against the base URL and authenticated like the first
// request, and returns every item in server order. One failing page fails the
// whole call. Relationship envelopes nested in a resource are left as received;
// [FollowRelationship] completes one on request.
//
// # Resources
//
// Every catalog and library object is a [Resource] parameterized by its
// attribute and relationship types, e.g. [Song] and [LibrarySong]. [Decode]
// accepts snake_case keys as well as the API's camelCase.
//
// # Storefront
//
// [Initialize] resolves the storefront once: a configured one is kept, otherwise
// the user's storefront is looked up, falling back to [DefaultStorefront].
package applemusic
