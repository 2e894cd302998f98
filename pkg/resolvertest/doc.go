// Package resolvertest provides helpers for testing code that reads from or
// writes to a resolver session.
//
// # Basic Usage
//
// Create a harness, seed resources and assert on the tree:
//
//	func TestRender(t *testing.T) {
//	    h := resolvertest.New(t)
//
//	    h.Resource("/content/home").
//	        WithType("app/page").
//	        WithProperty("title", "Home").
//	        Commit()
//
//	    render(h.Session, "/content/home")
//
//	    h.AssertProperty(t, "/content/home", "rendered", true)
//	}
//
// The session is closed when the test completes.
//
// # Fixtures
//
// Whole trees can be loaded from YAML:
//
//	h.LoadYAML("/content", `
//	home:
//	  sling:resourceType: app/page
//	  about:
//	    title: About
//	`)
//
// # Events
//
// Every committed change is recorded:
//
//	h.AssertEvents(t, events.Added, "/content/home", "/content/home/about")
package resolvertest
