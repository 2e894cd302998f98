// Package fixture loads resource trees from JSON and YAML documents into a
// resolver session, and dumps them back.
//
// A fixture document is an object. Keys whose values are objects become
// child resources, in document order; all other keys become properties of
// the resource. Arrays must hold scalars. Null values are rejected.
//
//	{
//	  "jcr:primaryType": "cq:Page",
//	  "jcr:content": {
//	    "sling:resourceType": "app/page",
//	    "title": "Home",
//	    "tags": ["a", "b"]
//	  }
//	}
//
// Integral numbers load as int64, other numbers as float64, YAML timestamps
// as time.Time and !!binary values as []byte. Loaded resources are staged in
// the session; callers commit.
package fixture
