package config

// DefaultBindings seeds a fresh install.
const DefaultBindings = `
unbindall

bind TAB "inven"
bind ENTER "invuse"
bind ESCAPE "togglemenu"
bind SPACE "+moveup"
bind c "+movedown"
bind SHIFT "+speed"
bind CTRL "+attack"
bind ALT "+strafe"

bind UPARROW "+forward"
bind DOWNARROW "+back"
bind LEFTARROW "+left"
bind RIGHTARROW "+right"
bind w "+forward"
bind s "+back"
bind a "+moveleft"
bind d "+moveright"
bind PGUP "+lookup"
bind PGDN "+lookdown"
bind END "centerview"

bind 1 "use Blaster"
bind 2 "use Shotgun"
bind 3 "use Super Shotgun"
bind 4 "use Machinegun"
bind 5 "use Chaingun"
bind 6 "use Grenade Launcher"
bind 7 "use Rocket Launcher"
bind 8 "use HyperBlaster"
bind 9 "use Railgun"
bind 0 "use BFG10K"
bind / "weapnext"

bind t "messagemode"
bind y "messagemode2"
bind F1 "cmd help"
bind F4 "menu_keys"
bind F12 "screenshot"
bind PAUSE "pause"

bind MOUSE1 "+attack"
bind MOUSE2 "+forward"
bind MOUSE3 "+back"
bind MWHEELUP "weapnext"
bind MWHEELDOWN "weapprev"
`
