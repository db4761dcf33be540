package guard

import (
	"testing"

	campusfound "github.com/campusfound/campusfound-go"
)

type fakeSession struct {
	authed bool
	role   campusfound.Role
}

func (s fakeSession) IsAuthenticated() bool  { return s.authed }
func (s fakeSession) Role() campusfound.Role { return s.role }

func TestUnauthenticatedAdminPathRedirectsToLogin(t *testing.T) {
	g := New(fakeSession{}, nil)

	d := g.Evaluate(PathMyItems)
	if d.Allowed {
		t.Fatal("unauthenticated visitor must not be admitted")
	}
	want := "/login?redirect=/admin/my-items"
	if d.RedirectTo != want {
		t.Errorf("redirect = %q, want %q", d.RedirectTo, want)
	}
	if notices := g.DrainNotices(); len(notices) != 0 {
		t.Errorf("notices = %v, an auth redirect queues none", notices)
	}
}

func TestRoleMismatchRedirectsHomeAndQueuesNotice(t *testing.T) {
	g := New(fakeSession{authed: true, role: campusfound.RoleNormalUser}, nil)

	d := g.Evaluate(PathSuperHome)
	if d.Allowed {
		t.Fatal("normal user must not reach the super-admin surface")
	}
	if d.RedirectTo != PathBrowse {
		t.Errorf("redirect = %q, want %q", d.RedirectTo, PathBrowse)
	}

	notices := g.DrainNotices()
	if len(notices) != 1 {
		t.Fatalf("notices = %v, want exactly one", notices)
	}
	if notices[0].Path != PathSuperHome || notices[0].Role != campusfound.RoleNormalUser {
		t.Errorf("notice = %+v", notices[0])
	}

	// Draining clears the queue.
	if again := g.DrainNotices(); len(again) != 0 {
		t.Errorf("second drain = %v, want empty", again)
	}
}

func TestAuthenticatedLoginPageRedirectsToRoleHome(t *testing.T) {
	cases := []struct {
		role campusfound.Role
		home string
	}{
		{campusfound.RoleNormalUser, PathBrowse},
		{campusfound.RoleLostItemAdmin, PathMyItems},
		{campusfound.RoleSuperAdmin, PathSuperHome},
	}
	for _, tc := range cases {
		g := New(fakeSession{authed: true, role: tc.role}, nil)
		d := g.Evaluate(PathLogin)
		if d.Allowed || d.RedirectTo != tc.home {
			t.Errorf("role %s: decision = %+v, want redirect to %s", tc.role, d, tc.home)
		}
	}
}

func TestAdmittedNavigations(t *testing.T) {
	cases := []struct {
		name    string
		session fakeSession
		path    string
	}{
		{"public browse, anonymous", fakeSession{}, PathBrowse},
		{"login page, anonymous", fakeSession{}, PathLogin},
		{"unknown path admits", fakeSession{}, "/some/unregistered/page"},
		{"profile, any role", fakeSession{authed: true, role: campusfound.RoleNormalUser}, PathProfile},
		{"admin items, lost-item admin", fakeSession{authed: true, role: campusfound.RoleLostItemAdmin}, PathMyItems},
		{"admin items, super admin", fakeSession{authed: true, role: campusfound.RoleSuperAdmin}, PathMyItems},
		{"super home, super admin", fakeSession{authed: true, role: campusfound.RoleSuperAdmin}, PathSuperHome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(tc.session, nil)
			d := g.Evaluate(tc.path)
			if !d.Allowed {
				t.Errorf("decision = %+v, want admitted", d)
			}
		})
	}
}

func TestRoleHomeUnknownRoleFallsBack(t *testing.T) {
	if home := RoleHome(campusfound.Role("moderator")); home != PathBrowse {
		t.Errorf("RoleHome = %q, want browse fallback", home)
	}
}
