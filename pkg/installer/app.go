// pkg/installer/app.go

package installer

// App identifies which Puppet application is being bootstrapped.
type App string

const (
	AppAgent  App = "agent"
	AppServer App = "server"
)

// PackageName returns the OS package name. The agent carries a dash in its
// package name, the server does not.
func (a App) PackageName() string {
	if a == AppAgent {
		return "puppet-agent"
	}
	return "puppetserver"
}
