package client

import (
	"net/url"
	"strings"
)

// Backend endpoint templates. Parameters are written as ":name" segments.
const (
	EndpointAssignments      = "/assignments"
	EndpointAssignmentByID   = "/assignments/:id"
	EndpointAssignmentStatus = "/assignments/:id/status"
	EndpointMarks            = "/marks"
	EndpointMarksByID        = "/marks/:id"
	EndpointMarksByCourse    = "/marks/course/:courseId"
	EndpointCourses          = "/courses"
	EndpointSettings         = "/settings"
	EndpointNotifications    = "/notifications"
	EndpointTestNotification = "/notifications/test"
	EndpointClassroomSync    = "/classroom/sync"
	EndpointClassroomStatus  = "/classroom/status"
)

// Route pairs an endpoint template with its expanded request path.
// The template is what metrics and spans are labelled with.
type Route struct {
	Template string
	Path     string
}

// Endpoint expands the ":param" segments of template with params, in order.
// Values are path-escaped. Missing params leave the segment untouched.
func Endpoint(template string, params ...string) Route {
	segments := strings.Split(template, "/")
	next := 0
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") || next >= len(params) {
			continue
		}
		segments[i] = url.PathEscape(params[next])
		next++
	}

	return Route{Template: template, Path: strings.Join(segments, "/")}
}
