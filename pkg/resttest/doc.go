// Package resttest provides a fake management server for testing code that
// talks to ATOM-style REST management APIs.
//
// # Basic Usage
//
//	func TestIndexes(t *testing.T) {
//	    srv := resttest.New(t)
//
//	    srv.Mock("GET", "/services/data/indexes").
//	        WithFeed(
//	            resttest.Entry("main", resttest.Field("disabled", "0")),
//	            resttest.Entry("history", resttest.Field("disabled", "1")),
//	        ).
//	        Reply()
//
//	    client := restclient.New(srv.URL())
//	    entries, err := client.Entities(ctx, "data/indexes", nil)
//	    ...
//	    srv.AssertCalled(t, "GET", "/services/data/indexes")
//	}
//
// # Authentication
//
// RequireAuth makes the server answer POST /services/auth/login with a
// session key and reject every other request that carries neither that key
// nor the basic credentials:
//
//	srv.RequireAuth("admin", "changeme", "session-key")
//
// Unmatched requests get a 404 messages response.
package resttest
