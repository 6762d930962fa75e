package grid

import (
	"github.com/janpfeifer/mazeGo/internal/generics"
	"github.com/pkg/errors"
	"slices"
)

// builtinLayouts indexed by name. See LoadLayout.
var builtinLayouts = map[string][]string{
	"tiny": {
		"%%%%%%%",
		"%    P%",
		"% %%% %",
		"%  %  %",
		"%%   %%",
		"%. %%%%",
		"%%%%%%%",
	},
	"small": {
		"%%%%%%%%%%%%%%%%%%%%%%",
		"% %%        % %      %",
		"%    %%%%%% % %%%%%% %",
		"%%%%%%     P  %      %",
		"%    % %%%%%% %% %%%%%",
		"% %%%% %         %   %",
		"%        %%% %%%   % %",
		"%%%%%%%%%%    %%%%%% %",
		"%.         %%        %",
		"%%%%%%%%%%%%%%%%%%%%%%",
	},
	"medium": {
		"%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%",
		"%                                 P%",
		"% %%%%%%%%%%%%%%%%%%%%%%% %%%%%%%% %",
		"% %%   %   %      %%%%%%%   %%     %",
		"% %% % % % %%%% %%%%%%%%% %%%% %%%%%",
		"% %% % % %             % %%        %",
		"% %% % % %%%%% %%%%%%% % %%%%%%%%% %",
		"%    % %       %       %           %",
		"%%%%%% %%%%%%%%%%%%%%%%% %%%%%%%%%%%",
		"%.     %                           %",
		"%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%%",
	},
	"tinysearch": {
		"%%%%%%%%%",
		"%..   ..%",
		"%%%%.%% %",
		"%   P   %",
		"%.%% %%.%",
		"%.%.   .%",
		"%%%%%%%%%",
	},
	"openclassic": {
		"%%%%%%%%%%%%%%%%%%%%%%%%%",
		"%.. P  ....      ....   %",
		"%..  ...  ...  ...  ... %",
		"%..  ...  ...  ...  ... %",
		"%..    ....      .... G %",
		"%..  ...  ...  ...  ... %",
		"%..  ...  ...  ...  ... %",
		"%..    ....      ....  o%",
		"%%%%%%%%%%%%%%%%%%%%%%%%%",
	},
	"trickyclassic": {
		"%%%%%%%%%%%%%%%%%%%%",
		"%o...%........%...o%",
		"%.%%.%.%%..%%.%.%%.%",
		"%...... G GG%......%",
		"%.%.%%.%% %%%.%%.%.%",
		"%.%....% ooo%.%..%.%",
		"%.%.%%.% %% %.%.%%.%",
		"%o%......P....%....%",
		"%%%%%%%%%%%%%%%%%%%%",
	},
	"minimax": {
		"%%%%%%%%%",
		"%.P    G%",
		"% %.%G%%%",
		"%G    %%%",
		"%%%%%%%%%",
	},
}

// LoadLayout returns one of the built-in layouts by name.
func LoadLayout(name string) (*Layout, error) {
	rows, found := builtinLayouts[name]
	if !found {
		return nil, errors.Errorf("unknown layout %q, valid layouts are %q", name, LayoutNames())
	}
	return NewLayout(name, rows...)
}

// LayoutNames returns the names of the built-in layouts, sorted.
func LayoutNames() []string {
	return slices.Collect(generics.SortedKeys(builtinLayouts))
}
