package catalog

import (
	"github.com/cdtdelta/cmdsynth/internal/model"
)

// builder accumulates templates. add is the only way a template enters the
// catalog, so a template's weight always follows from its declared risk.
type builder struct {
	templates []model.CommandTemplate
}

func (b *builder) add(base string, risk int, sudoProbability float64, patterns ...string) {
	if len(patterns) == 0 {
		panic("catalog: template " + base + " has no patterns")
	}
	b.templates = append(b.templates, model.CommandTemplate{
		BaseCommand:     base,
		RiskLevel:       risk,
		SudoProbability: sudoProbability,
		Patterns:        patterns,
		BaseWeight:      BaseWeight(risk),
	})
}

// Catalog is the immutable, ordered set of command templates for a run.
// It is built once and shared read-only by every generator goroutine.
type Catalog struct {
	templates []model.CommandTemplate
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// At returns the template at index i.
func (c *Catalog) At(i int) *model.CommandTemplate {
	return &c.templates[i]
}

// Templates returns a copy of the catalog entries in registration order.
func (c *Catalog) Templates() []model.CommandTemplate {
	out := make([]model.CommandTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// Build returns the command template catalog. It is deterministic: weights
// derive only from the risk decay constant.
//
// Placeholders in patterns are {name} keys supplied by the context builder
// (home, proj, file_py, file_txt, file_log, file_js, pattern, container,
// port, pkg, branch, commit_msg, remote_host, script_sh, user_name).
func Build() *Catalog {
	b := &builder{}

	// Risk level 1
	b.add("ls", 1, 0.0,
		"ls",
		"ls -la",
		"ls {home}",
		"ls {proj}",
		"ls {proj}/src",
	)
	b.add("pwd", 1, 0.0, "pwd")
	b.add("cd", 1, 0.0,
		"cd {home}",
		"cd {proj}",
		"cd {proj}/src",
		"cd {proj}/data",
	)
	b.add("cat", 1, 0.0,
		"cat {file_txt}",
		"cat {proj}/{file_py}",
	)
	b.add("grep", 1, 0.0,
		`grep "{pattern}" {file_txt}`,
		`grep -R "{pattern}" {proj}`,
	)
	b.add("head", 1, 0.0,
		"head {file_txt}",
		"head -n 20 {proj}/{file_py}",
	)
	b.add("tail", 1, 0.0,
		"tail {file_log}",
		"tail -f {file_log}",
	)
	b.add("echo", 1, 0.0,
		`echo "Hello, world"`,
		`echo "DEBUG"`,
	)
	b.add("whoami", 1, 0.0, "whoami")
	b.add("history", 1, 0.0,
		"history",
		"history | tail",
	)
	b.add("man", 1, 0.0,
		"man ls",
		"man grep",
		"man python",
	)
	b.add("which", 1, 0.0,
		"which python",
		"which gcc",
		"which git",
	)
	b.add("id", 1, 0.0,
		"id",
		"id {user_name}",
	)
	b.add("date", 1, 0.0, "date")
	b.add("df", 1, 0.0,
		"df -h",
		"df -h {home}",
	)
	b.add("free", 1, 0.0, "free -h")
	b.add("uname", 1, 0.0,
		"uname -a",
		"uname -r",
	)
	b.add("top", 1, 0.0, "top -b -n 1")
	b.add("wc", 1, 0.0,
		"wc -l {file_txt}",
		"wc -w {file_txt}",
	)
	b.add("find", 1, 0.0,
		"find {proj} -maxdepth 1 -type f",
		`find {proj} -name "*.py"`,
	)
	b.add("less", 1, 0.0,
		"less {file_txt}",
		"less {file_log}",
	)
	b.add("more", 1, 0.0, "more {file_txt}")
	b.add("env", 1, 0.0, "env")
	b.add("printenv", 1, 0.0,
		"printenv",
		"printenv PATH",
	)
	b.add("clear", 1, 0.0, "clear")
	b.add("alias", 1, 0.0,
		"alias",
		`alias ll="ls -la"`,
	)
	b.add("unalias", 1, 0.0, "unalias ll")
	b.add("hostname", 1, 0.0, "hostname")
	b.add("groups", 1, 0.0,
		"groups",
		"groups {user_name}",
	)
	b.add("uptime", 1, 0.0, "uptime")
	b.add("stat", 1, 0.0,
		"stat {file_txt}",
		"stat {proj}/{file_py}",
	)
	b.add("ls", 1, 0.0,
		"ls -lh",
		"ls --color=auto",
	)

	// Risk level 2
	b.add("touch", 2, 0.0,
		"touch {file_txt}",
		"touch {proj}/{file_py}",
	)
	b.add("mkdir", 2, 0.0,
		"mkdir {proj}/build",
		"mkdir -p {proj}/results",
	)
	b.add("rm", 2, 0.0,
		"rm {file_txt}",
		"rm {proj}/{file_py}",
	)
	b.add("nano", 2, 0.0,
		"nano {file_txt}",
		"nano {proj}/{file_py}",
	)
	b.add("vim", 2, 0.0,
		"vim {file_txt}",
		"vim {proj}/{file_py}",
	)
	b.add("python", 2, 0.0,
		"python {file_py}",
		"python {proj}/{file_py}",
		"python -m pytest",
	)
	b.add("pip", 2, 0.1,
		"pip install {pkg}",
		"pip install --user {pkg}",
	)
	b.add("git", 2, 0.0,
		"git status",
		"git pull",
		"git checkout {branch}",
		`git commit -am "{commit_msg}"`,
	)
	b.add("ssh", 2, 0.0,
		"ssh {remote_host}",
		"ssh {user_name}@{remote_host}",
	)
	b.add("cp", 2, 0.0,
		"cp {file_txt} {file_txt}.bak",
		"cp {proj}/{file_py} {proj}/{file_py}.bak",
	)
	b.add("mv", 2, 0.0,
		"mv {file_txt} {file_txt}.old",
		"mv {proj}/{file_py} {proj}/old_{file_py}",
	)
	b.add("rsync", 2, 0.1,
		"rsync -av {proj}/ {proj}/backup/",
		"rsync -av {proj}/ user@{remote_host}:{proj}/",
	)
	b.add("scp", 2, 0.0,
		"scp {file_txt} {user_name}@{remote_host}:~/",
		"scp -r {proj} {user_name}@{remote_host}:~/projects/",
	)
	b.add("curl", 2, 0.0,
		"curl https://example.com",
		"curl -O https://example.com/file.txt",
	)
	b.add("wget", 2, 0.0,
		"wget https://example.com/file.txt",
		"wget -qO- https://example.com",
	)
	b.add("tar", 2, 0.0,
		"tar -czf {proj}/archive.tar.gz {proj}",
		"tar -xzf archive.tar.gz",
	)
	b.add("zip", 2, 0.0, "zip -r project.zip {proj}")
	b.add("unzip", 2, 0.0, "unzip project.zip")
	b.add("ln", 2, 0.0,
		"ln -s {proj}/{file_py} {home}/{file_py}",
		"ln -s {proj} {home}/proj_link",
	)
	b.add("make", 2, 0.0,
		"make",
		"make test",
	)
	b.add("cmake", 2, 0.0,
		"cmake .",
		"cmake ..",
	)
	b.add("jupyter", 2, 0.0,
		"jupyter notebook",
		"jupyter lab",
	)
	b.add("conda", 2, 0.1,
		"conda activate base",
		"conda create -n env python=3.11",
	)
	b.add("virtualenv", 2, 0.0,
		"virtualenv venv",
		"virtualenv -p python3 venv",
	)
	b.add("npm", 2, 0.0,
		"npm install",
		"npm run build",
	)
	b.add("node", 2, 0.0, "node {proj}/{file_js}")
	b.add("javac", 2, 0.0, "javac Main.java")
	b.add("java", 2, 0.0, "java Main")
	b.add("gcc", 2, 0.0, "gcc main.c -o main")
	b.add("g++", 2, 0.0, "g++ main.cpp -o main")
	b.add("cargo", 2, 0.0,
		"cargo build",
		"cargo test",
	)
	b.add("go", 2, 0.0,
		"go build",
		"go test ./...",
	)
	b.add("R", 2, 0.0, "Rscript analysis.R")
	b.add("julia", 2, 0.0, "julia script.jl")
	b.add("matlab", 2, 0.0, `matlab -batch "run('script.m')"`)
	b.add("ssh-keygen", 2, 0.0, "ssh-keygen -t rsa -b 4096")

	// Risk level 3
	b.add("docker", 3, 0.1,
		"docker ps",
		"docker images",
		"docker run -it {container} /bin/bash",
		"docker run -p {port}:{port} {container}",
	)
	b.add("rm", 3, 0.2,
		"rm -rf {proj}/build",
		"rm -rf {proj}/.pytest_cache",
	)
	b.add("chmod", 3, 0.1,
		"chmod +x {script_sh}",
		"chmod 600 {file_txt}",
	)
	b.add("chown", 3, 0.3,
		"chown {user_name}:{user_name} {proj}",
		"chown -R {user_name}:{user_name} {proj}",
	)
	b.add("systemctl", 3, 0.8,
		"systemctl status",
		"systemctl status ssh",
	)
	b.add("ps", 3, 0.0,
		"ps aux | grep python",
		"ps -ef | grep {pattern}",
	)
	b.add("kill", 3, 0.0,
		"kill -9 1234",
		"kill 1234",
	)
	b.add("killall", 3, 0.0,
		"killall python",
		"killall -9 java",
	)
	b.add("crontab", 3, 0.5,
		"crontab -l",
		"crontab -e",
	)
	b.add("service", 3, 0.7,
		"service ssh status",
		"service apache2 status",
	)
	b.add("mount", 3, 0.5,
		"mount",
		"mount /dev/sdb1 /mnt",
	)
	b.add("umount", 3, 0.5, "umount /mnt")
	b.add("journalctl", 3, 0.0,
		"journalctl -xe",
		"journalctl -u ssh",
	)
	b.add("tcpdump", 3, 0.5,
		"tcpdump -i eth0",
		"tcpdump -i eth0 port 22",
	)
	b.add("ifconfig", 3, 0.0, "ifconfig")
	b.add("ip", 3, 0.0,
		"ip a",
		"ip r",
	)
	b.add("netstat", 3, 0.0, "netstat -tulpn")
	b.add("nmap", 3, 0.0,
		"nmap localhost",
		"nmap -sV localhost",
	)
	b.add("ufw", 3, 0.7, "ufw status")
	b.add("htop", 3, 0.0, "htop")
	b.add("nice", 3, 0.0, "nice -n 10 python {file_py}")
	b.add("renice", 3, 0.0, "renice 10 -p 1234")
	b.add("chattr", 3, 0.7,
		"chattr +i {file_txt}",
		"chattr -i {file_txt}",
	)
	b.add("sysctl", 3, 0.7,
		"sysctl -a",
		"sysctl net.ipv4.ip_forward",
	)

	// Risk level 4
	b.add("iptables", 4, 0.95,
		"iptables -L",
		"iptables -F",
	)
	b.add("useradd", 4, 0.95,
		"useradd testuser",
		"useradd -m projectuser",
	)
	b.add("userdel", 4, 0.95,
		"userdel testuser",
		"userdel -r projectuser",
	)
	b.add("apt-get", 4, 0.95,
		"apt-get update",
		"apt-get install {pkg}",
	)
	b.add("systemctl", 4, 0.98,
		"systemctl stop ssh",
		"systemctl restart ssh",
	)
	b.add("ufw", 4, 0.95,
		"ufw enable",
		"ufw allow 22",
		"ufw deny 22",
	)
	b.add("adduser", 4, 0.95, "adduser student")
	b.add("deluser", 4, 0.95,
		"deluser student",
		"deluser --remove-home student",
	)
	b.add("visudo", 4, 0.95, "visudo")
	b.add("passwd", 4, 0.95,
		"passwd {user_name}",
		"passwd root",
	)
	b.add("groupadd", 4, 0.95, "groupadd devs")
	b.add("groupdel", 4, 0.95, "groupdel devs")
	b.add("service", 4, 0.98,
		"service ssh stop",
		"service ssh restart",
	)
	b.add("shutdown", 4, 0.99,
		"shutdown -r now",
		"shutdown -h now",
	)
	b.add("reboot", 4, 0.99, "reboot")
	b.add("halt", 4, 0.99, "halt")
	b.add("mount", 4, 0.95, "mount /dev/sda1 /mnt")
	b.add("umount", 4, 0.95, "umount /dev/sda1")
	b.add("lvremove", 4, 0.99, "lvremove -f vg0/lv0")
	b.add("vgremove", 4, 0.99, "vgremove -f vg0")

	// Risk level 5
	b.add("rm", 5, 0.99,
		"rm -rf /",
		"rm -rf /home/*",
		"rm -rf /var/log/*",
	)
	b.add("mkfs", 5, 0.99,
		"mkfs.ext4 /dev/sda1",
		"mkfs.xfs /dev/sdb",
	)
	b.add("fdisk", 5, 0.99,
		"fdisk /dev/sda",
		"fdisk /dev/nvme0n1",
	)
	b.add("dd", 5, 0.99,
		"dd if=/dev/zero of=/dev/sda bs=1M",
		"dd if=/dev/random of=/dev/sdb bs=4K",
	)
	b.add("shred", 5, 0.99,
		"shred -n 3 -z /dev/sda",
		"shred -u {file_txt}",
	)
	b.add("rm", 5, 0.99,
		"rm -rf ~",
		"rm -rf /etc/*",
	)
	b.add("chmod", 5, 0.99, "chmod -R 000 /")
	b.add("chown", 5, 0.99, "chown -R nobody:nogroup /")
	// The braces are shell syntax, not placeholders; this renders through
	// the literal fallback.
	b.add(":(){:|:&};:", 5, 0.99, ":(){ :|:& };:  # fork bomb")
	b.add("mkfs", 5, 0.99, "mkfs.ext4 /dev/nvme0n1")
	b.add("wipefs", 5, 0.99, "wipefs -a /dev/sda")
	b.add("lvremove", 5, 0.99, "lvremove -f vg0/*")

	return &Catalog{templates: b.templates}
}
